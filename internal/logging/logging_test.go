package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/finance-calculator/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"info":    zapcore.InfoLevel,
		"debug":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for input, expected := range tests {
		level, err := ParseLevel(input)
		if err != nil {
			t.Errorf("ParseLevel(%q) unexpected error = %v", input, err)
			continue
		}
		if level != expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", input, level, expected)
		}
	}

	if _, err := ParseLevel("trace"); err == nil {
		t.Error("expected error for unsupported level")
	}
}

func TestNewOverrideTakesPrecedence(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "error", Format: "console"}, "debug")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level to be enabled by the override")
	}
}

func TestNewDefaultsToInfo(t *testing.T) {
	logger, err := New(config.LoggingConfig{}, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled by default")
	}
	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be enabled by default")
	}
}

func TestNewInvalidFormat(t *testing.T) {
	if _, err := New(config.LoggingConfig{Format: "xml"}, ""); err == nil {
		t.Fatal("expected error for invalid format")
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New(config.LoggingConfig{}, "loud"); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "calc.log")
	logger, err := New(config.LoggingConfig{OutputFile: path}, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected log output in file")
	}
}
