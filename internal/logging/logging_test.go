package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"debug": zapcore.DebugLevel,
		"WARN":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q)=%v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("ParseLevel(loud) expected error")
	}
}

func TestNewBuildsBothEncoders(t *testing.T) {
	for _, json := range []bool{true, false} {
		log, err := New("debug", json)
		if err != nil {
			t.Fatalf("New(json=%v): %v", json, err)
		}
		if !log.Core().Enabled(zapcore.DebugLevel) {
			t.Fatalf("debug not enabled (json=%v)", json)
		}
	}
}
