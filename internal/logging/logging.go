// Package logging builds the shell's zap logger. Logs never go to the
// terminal the user is typing into: without a log file the logger is a no-op.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger appending to path at debug level, tagged with the
// session id. An empty path returns zap.NewNop().
func New(path, sessionID string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.Sampling = nil
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger for %s: %w", path, err)
	}

	return logger.With(zap.String("session", sessionID)), nil
}
