package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rogerio-castellano/product-api/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")

	log, err := New(config.LogConfig{Mode: "production", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Info("product created")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"product created"`) {
		t.Errorf("expected JSON log line in file, got %q", string(data))
	}
}

func TestNewDevelopment(t *testing.T) {
	log, err := New(config.LogConfig{Mode: "development"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level to be enabled in development mode")
	}
}
