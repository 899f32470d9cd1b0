package logging

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

// TestInitializeFileOutput proves log lines reach a configured file
func TestInitializeFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.log")
	if err := Initialize(Config{Level: "info", Format: "json", Output: path}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer func() { _ = Initialize(DefaultConfig()) }()

	Info("quote computed")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("no log output written")
	}
}

// TestInitializeUnwritableFileErrors proves a bad log path is surfaced
func TestInitializeUnwritableFileErrors(t *testing.T) {
	if err := Initialize(Config{Output: filepath.Join(t.TempDir(), "missing", "quote.log")}); err == nil {
		t.Fatal("expected error for unwritable log file")
	}
	if Logger == nil {
		t.Fatal("failed Initialize left the logger nil")
	}
	_ = Initialize(DefaultConfig())
}

// TestBadLevelFallsBackToInfo proves a level typo does not fail startup
func TestBadLevelFallsBackToInfo(t *testing.T) {
	if err := Initialize(Config{Level: "loud", Format: "console", Output: "stderr"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if !Logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info level should be enabled after fallback")
	}
	_ = Initialize(DefaultConfig())
}
