package state

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"twstyle/style"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}

// PrepareStyles builds resolver from configured lookup table once, subsequent
// calls return already prepared one.
func (e *LocalEnv) PrepareStyles() (*style.Resolver, error) {
	if e.Styles != nil {
		return e.Styles, nil
	}
	if e.Cfg == nil {
		return nil, errors.New("configuration is not loaded")
	}
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}
	r, err := e.Cfg.Styles.Prepare(log)
	if err != nil {
		return nil, err
	}
	e.Styles = r
	return r, nil
}
