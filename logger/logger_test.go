package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func newJSONLogger(level string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: level, Format: "json"}, "test-svc", &buf)
	return l, &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line, got nothing")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestJSONOutputCarriesFields(t *testing.T) {
	l, buf := newJSONLogger("debug")
	l.Info("dispatch", Fields(FieldProvider, "openai", FieldCapability, "LLM"))

	m := decodeLine(t, buf)
	if m["message"] != "dispatch" {
		t.Errorf("expected message 'dispatch', got %v", m["message"])
	}
	if m[FieldProvider] != "openai" {
		t.Errorf("expected provider 'openai', got %v", m[FieldProvider])
	}
	if m["service"] != "test-svc" {
		t.Errorf("expected service 'test-svc', got %v", m["service"])
	}
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newJSONLogger("warn")
	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug/info to be filtered, got %q", buf.String())
	}
	l.Warn("shown")
	if m := decodeLine(t, buf); m["level"] != "warn" {
		t.Errorf("expected level 'warn', got %v", m["level"])
	}
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	l, buf := newJSONLogger("invalid-level")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered at info level, got %q", buf.String())
	}
	l.Info("shown")
	decodeLine(t, buf)
}

func TestWithComponent(t *testing.T) {
	l, buf := newJSONLogger("info")
	l.WithComponent("factory").Info("hello")
	if m := decodeLine(t, buf); m[FieldComponent] != "factory" {
		t.Errorf("expected component 'factory', got %v", m[FieldComponent])
	}
}

func TestWithContextRequestID(t *testing.T) {
	l, buf := newJSONLogger("info")
	ctx := ContextWithRequestID(context.Background(), "req-1")
	l.WithContext(ctx).Info("hello")
	if m := decodeLine(t, buf); m[FieldRequestID] != "req-1" {
		t.Errorf("expected request_id 'req-1', got %v", m[FieldRequestID])
	}
}

func TestWithContextWithoutRequestID(t *testing.T) {
	l, _ := newJSONLogger("info")
	if got := l.WithContext(context.Background()); got != l {
		t.Error("expected the same logger when context has no request id")
	}
}

func TestWithFieldsAndError(t *testing.T) {
	l, buf := newJSONLogger("info")
	l.WithFields(map[string]any{"k": "v"}).WithError(errors.New("boom")).Error("failed")
	m := decodeLine(t, buf)
	if m["k"] != "v" {
		t.Errorf("expected k=v, got %v", m["k"])
	}
	if m["error"] != "boom" {
		t.Errorf("expected error 'boom', got %v", m["error"])
	}
}

func TestNopDiscards(t *testing.T) {
	Nop().Error("nothing")
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp=true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "debug", Format: "json"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("expected error=%v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRegisterAndGet(t *testing.T) {
	l, buf := newJSONLogger("info")
	Register("custom-test", l)
	t.Cleanup(func() { Unregister("custom-test") })

	Get("custom-test").Info("x")
	decodeLine(t, buf)
}

func TestGetCachesUntilGlobalChanges(t *testing.T) {
	first, firstBuf := newJSONLogger("info")
	SetGlobalLogger(first)
	t.Cleanup(func() { SetGlobalLogger(nil) })

	a := Get(ComponentFactory)
	if b := Get(ComponentFactory); a != b {
		t.Error("expected cached component logger")
	}

	second, secondBuf := newJSONLogger("info")
	SetGlobalLogger(second)
	c := Get(ComponentFactory)
	if c == a {
		t.Fatal("expected component logger rebuilt after global change")
	}
	c.Info("x")
	if firstBuf.Len() != 0 {
		t.Errorf("expected nothing on the old writer, got %q", firstBuf.String())
	}
	if m := decodeLine(t, secondBuf); m[FieldComponent] != ComponentFactory {
		t.Errorf("expected component %s, got %v", ComponentFactory, m[FieldComponent])
	}
}

func TestRegisterPinsOverGlobal(t *testing.T) {
	pinned, buf := newJSONLogger("info")
	Register(ComponentCLI, pinned)
	t.Cleanup(func() { Unregister(ComponentCLI) })

	other, _ := newJSONLogger("info")
	SetGlobalLogger(other)
	t.Cleanup(func() { SetGlobalLogger(nil) })

	if Get(ComponentCLI) != pinned {
		t.Error("expected pinned logger")
	}
	Unregister(ComponentCLI)
	if Get(ComponentCLI) == pinned {
		t.Error("expected derived logger after Unregister")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestGetUnregisteredUsesGlobal(t *testing.T) {
	l, buf := newJSONLogger("info")
	SetGlobalLogger(l)
	t.Cleanup(func() { SetGlobalLogger(nil) })

	Get("never-registered").Info("x")
	if m := decodeLine(t, buf); m[FieldComponent] != "never-registered" {
		t.Errorf("expected component tag, got %v", m[FieldComponent])
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if len(m) != 2 {
		t.Fatalf("expected 2 fields, got %d: %v", len(m), m)
	}
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields: %v", m)
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	ef := ErrorFields("complete", errors.New("x"))
	if ef[FieldOperation] != "complete" || ef[FieldError] != "x" {
		t.Errorf("unexpected error fields: %v", ef)
	}
	df := DurationFields("complete", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", df[FieldDuration])
	}
}
