package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/najoast/pointdemo/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.log")

	logger, err := New(config.LogConfig{Level: config.LogLevelInfo, Format: "json", Output: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("visible")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"visible"`) {
		t.Errorf("Expected info entry in json log, got: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("Debug entry should be filtered at info level, got: %s", out)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LogConfig
		want error
	}{
		{"level", config.LogConfig{Level: "chatty", Format: "text"}, config.ErrInvalidLogLevel},
		{"format", config.LogConfig{Level: config.LogLevelWarn, Format: "xml"}, config.ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewDefaultConfig(t *testing.T) {
	logger, err := New(config.DefaultConfig().Log)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Debug should be disabled at the default warn level")
	}
}
