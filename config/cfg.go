package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"twstyle/style"
	"twstyle/table"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	BreakpointConfig struct {
		Name     string `yaml:"name" validate:"required,alphanum"`
		MinWidth int    `yaml:"min_width" validate:"gt=0"`
	}

	StylesConfig struct {
		Source       string             `yaml:"source" sanitize:"assure_file_access"`
		RootFontSize float64            `yaml:"root_font_size" validate:"gt=0"`
		Breakpoints  []BreakpointConfig `yaml:"breakpoints" validate:"required,min=1,unique=Name,unique=MinWidth,dive"`
	}

	Config struct {
		Version int           `yaml:"version" validate:"eq=1"`
		Styles  StylesConfig  `yaml:"styles"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

// Tiers returns configured breakpoints in the form resolver expects.
func (conf *StylesConfig) Tiers() []style.Breakpoint {
	bps := make([]style.Breakpoint, 0, len(conf.Breakpoints))
	for _, bp := range conf.Breakpoints {
		bps = append(bps, style.Breakpoint{Name: bp.Name, MinWidth: bp.MinWidth})
	}
	return bps
}

// Table loads configured lookup table, embedded one when no source is set.
func (conf *StylesConfig) Table(log *zap.Logger) (style.Table, error) {
	if len(conf.Source) == 0 {
		return table.Default(log)
	}
	return table.LoadFile(conf.Source, log, conf.RootFontSize)
}

// Prepare returns resolver for configured table and breakpoints.
func (conf *StylesConfig) Prepare(log *zap.Logger) (*style.Resolver, error) {
	t, err := conf.Table(log)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare lookup table: %w", err)
	}
	log.Debug("Lookup table loaded", zap.String("source", conf.Source), zap.Int("classes", len(t)))
	return style.New(t, log, style.WithBreakpoints(conf.Tiers()...)), nil
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("configuration sanitization failed: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
