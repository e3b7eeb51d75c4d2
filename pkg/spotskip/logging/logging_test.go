package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{in: "debug", want: log.DebugLevel},
		{in: "info", want: log.InfoLevel},
		{in: "WARN", want: log.WarnLevel},
		{in: "warning", want: log.WarnLevel},
		{in: "error", want: log.ErrorLevel},
		{in: "trace", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLevel) {
					t.Errorf("expected ErrInvalidLevel, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGet_BeforeInitIsSilent(t *testing.T) {
	// Must not panic or create files.
	logger := Get("early")
	logger.Info("discarded")
}

func TestInitAndGet_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "spotskip.log")

	if err := Init(Config{Level: "debug", Path: path}); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	logger := Get("scanner")
	logger.Info("scan started", "root", "/tmp/x")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "scan started") {
		t.Errorf("log file missing message, got: %s", data)
	}
	if !strings.Contains(string(data), "scanner") {
		t.Errorf("log file missing component prefix, got: %s", data)
	}
}

func TestInit_LevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spotskip.log")

	if err := Init(Config{Level: "warn", Path: path}); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	logger := Get("run")
	logger.Debug("hidden")
	logger.Warn("visible")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Error("debug message leaked past warn level")
	}
	if !strings.Contains(string(data), "visible") {
		t.Error("warn message missing")
	}
}

func TestInit_InvalidLevel(t *testing.T) {
	err := Init(Config{Level: "loud"})
	if !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("expected ErrInvalidLevel, got %v", err)
	}
}
