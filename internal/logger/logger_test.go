package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"Warning", zapcore.WarnLevel},
		{" error ", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNamedAndWith(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := FromCore(core).Named("kv").With(String("backend", "memory"))

	log.Debug("dropped")
	log.Info("opened", Int("keys", 3))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.LoggerName != "kv" || e.Message != "opened" {
		t.Errorf("entry = %+v", e)
	}
	ctx := e.ContextMap()
	if ctx["backend"] != "memory" || ctx["keys"] != int64(3) {
		t.Errorf("context = %v", ctx)
	}
}
