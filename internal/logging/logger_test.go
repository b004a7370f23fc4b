package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestFieldHelpers(t *testing.T) {
	t.Parallel()
	testErr := errors.New("boom")
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("analysis", "surface"), "analysis", "surface"},
		{"Int", Int("points", 2500), "points", 2500},
		{"Float64", Float64("p", 0.6), "p", 0.6},
		{"Duration", Duration("elapsed", time.Second), "elapsed", time.Second},
		{"Err", Err(testErr), "error", testErr},
		{"Err nil", Err(nil), "error", nil},
	}
	for _, tt := range tests {
		if tt.field.Key != tt.key || tt.field.Value != tt.value {
			t.Errorf("%s() = %+v, want {%s %v}", tt.name, tt.field, tt.key, tt.value)
		}
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewLogger(&buf, "render").Info("chart written", String("path", "surface.html"))

	out := buf.String()
	for _, want := range []string{`"component":"render"`, "chart written", "surface.html", `"level":"info"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestZerologAdapter_Levels(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{"debug", func(l Logger) { l.Debug("row done", Int("row", 3)) }, []string{"debug", "row done", "3"}},
		{"warn", func(l Logger) { l.Warn("no break-even", Float64("p", 0.9)) }, []string{"warn", "0.9"}},
		{"error", func(l Logger) { l.Error("sweep failed", errors.New("canceled")) }, []string{"error", "sweep failed", "canceled"}},
		{"error nil", func(l Logger) { l.Error("odd", nil) }, []string{"error", "odd"}},
		{"printf", func(l Logger) { l.Printf("N=%d", 7) }, []string{"N=7"}},
		{"println", func(l Logger) { l.Println("a", "b") }, []string{"a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.log(NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel)))
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output should contain %q, got: %s", want, buf.String())
				}
			}
		})
	}
}

func TestApplyFields_Types(t *testing.T) {
	t.Parallel()
	tests := []struct {
		field    Field
		contains string
	}{
		{Field{Key: "i64", Value: int64(1 << 40)}, "1099511627776"},
		{Field{Key: "flag", Value: true}, "true"},
		{Field{Key: "dur", Value: 1500 * time.Millisecond}, "1500"},
		{Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{Field{Key: "data", Value: struct{ N int }{N: 5}}, "5"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		NewLogger(&buf, "test").Info("x", tt.field)
		if !strings.Contains(buf.String(), tt.contains) {
			t.Errorf("field %s: output %s should contain %q", tt.field.Key, buf.String(), tt.contains)
		}
	}
}

func TestZerologAdapter_With(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewLogger(&buf, "app").With(String("analysis", "speed")).Info("done")
	if !strings.Contains(buf.String(), `"analysis":"speed"`) {
		t.Errorf("With() field missing: %s", buf.String())
	}
}

func TestConsoleLogger_LevelFilter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, zerolog.WarnLevel, true)
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("level filter not applied: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"WARN":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
		"":      zerolog.InfoLevel,
		"loud":  zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

var _ Logger = (*ZerologAdapter)(nil)
