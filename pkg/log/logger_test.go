package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func newBufLogger(level Level, f Formatter) (Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(WithLevel(level), WithFormatter(f), WithOutput(NewWriterOutput(&buf)))
	return l, &buf
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newBufLogger(WarnLevel, &TextFormatter{})
	l.Debug("dropped")
	l.Info("dropped too")
	l.Warn("kept")
	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("low-severity entries leaked: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn entry missing: %q", out)
	}
}

func TestJSONFormatterFields(t *testing.T) {
	l, buf := newBufLogger(InfoLevel, &JSONFormatter{})
	l.With(Component("store")).Info("created", Str("id", "abc"), Int("n", 3))

	var obj map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &obj); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}
	if obj["msg"] != "created" {
		t.Fatalf("msg: %v", obj["msg"])
	}
	if obj["component"] != "store" {
		t.Fatalf("component: %v", obj["component"])
	}
	if obj["id"] != "abc" {
		t.Fatalf("id: %v", obj["id"])
	}
	if obj["level"] != "INFO" {
		t.Fatalf("level: %v", obj["level"])
	}
}

func TestWithDoesNotMutateParent(t *testing.T) {
	l, buf := newBufLogger(InfoLevel, &TextFormatter{})
	child := l.With(Str("k", "v"))
	l.Info("parent")
	if strings.Contains(buf.String(), "k=v") {
		t.Fatalf("parent logger picked up child field: %q", buf.String())
	}
	buf.Reset()
	child.Info("child")
	if !strings.Contains(buf.String(), "k=v") {
		t.Fatalf("child logger missing field: %q", buf.String())
	}
}

func TestApplyConfig(t *testing.T) {
	l, err := ApplyConfig(&Config{Level: "error", Format: "json"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if l.GetLevel() != ErrorLevel {
		t.Fatalf("level: %v", l.GetLevel())
	}
	if _, err := ApplyConfig(&Config{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
