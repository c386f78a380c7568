package style

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DiagnosticCore writes human readable log lines (level, logger name,
// message and fields, no timestamps or callers) to w. It backs resolvers
// created without a logger and the program console log, so both report
// unsupported classes the same way.
func DiagnosticCore(w zapcore.WriteSyncer, level zapcore.LevelEnabler, color bool) zapcore.Core {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(ec), w, level)
}

// diagnosticLogger reports warnings and errors to stderr.
func diagnosticLogger() *zap.Logger {
	return zap.New(DiagnosticCore(zapcore.Lock(os.Stderr), zapcore.WarnLevel, false))
}
