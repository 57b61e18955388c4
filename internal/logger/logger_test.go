package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/samvad-hq/samvad-content/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"loud":    zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v want %v", in, got, want)
		}
	}
}

func TestInitSetsPackageLogger(t *testing.T) {
	log, err := Init(&config.Config{AppName: "test", LogLevel: "debug"})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if log == nil || S == nil {
		t.Fatalf("expected logger to be initialized")
	}
	log.DebugObj("debug message", "payload", map[string]int{"n": 1})
	InfoObj("package helper", "payload", "ok")

	var _ Logger = NopLogger{}
}
