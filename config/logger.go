package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"twstyle/misc"
	"twstyle/style"
)

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// consoleLevel maps configured level onto console threshold. Standard output
// carries command results (styles, tables, configuration), so console log
// always goes to stderr and "normal" means diagnostics only.
func consoleLevel(level string) (zapcore.Level, bool) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, true
	case "normal":
		return zapcore.WarnLevel, true
	}
	return zapcore.InvalidLevel, false
}

// fileLevel maps configured level onto file log threshold.
func fileLevel(level string) (zapcore.Level, bool) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, true
	case "normal":
		return zapcore.InfoLevel, true
	}
	return zapcore.InvalidLevel, false
}

// Prepare returns program logger. Console part uses the same diagnostic
// format resolvers fall back to when created without a logger.
func (conf *LoggingConfig) Prepare() (*zap.Logger, error) {
	cores := make([]zapcore.Core, 0, 2)

	if level, ok := consoleLevel(conf.ConsoleLogger.Level); ok {
		cores = append(cores, style.DiagnosticCore(zapcore.Lock(os.Stderr), level, colorOutput(os.Stderr)))
	}

	if level, ok := fileLevel(conf.FileLogger.Level); ok {
		core, err := conf.FileLogger.fileCore(level)
		if err != nil {
			return nil, err
		}
		cores = append(cores, core)
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Named(misc.GetAppName()), nil
}

// fileCore opens log destination and returns core writing complete entries
// (time and caller included) at given level.
func (conf *LoggerConfig) fileCore(level zapcore.Level) (zapcore.Core, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if conf.Mode == "append" {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(conf.Destination, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to access file log destination (%s): %w", conf.Destination, err)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(f), level), nil
}
