// Package logging builds the zap logger used across the demo
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/najoast/pointdemo/config"
)

// New builds a logger from the log section of the configuration. Text
// format uses zap's console encoder. Output is stderr unless configured
// otherwise so stdout only carries program output.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", config.ErrInvalidLogLevel, cfg.Level)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Sampling = nil

	switch cfg.Format {
	case "json":
		zc.Encoding = "json"
	case "", "text":
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrInvalidLogFormat, cfg.Format)
	}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	output := cfg.Output
	if output == "" {
		output = "stderr"
	}
	zc.OutputPaths = []string{output}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
