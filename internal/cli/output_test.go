package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/specdec/internal/orchestration"
)

func TestFormatTextReport(t *testing.T) {
	t.Parallel()
	results := []orchestration.AnalysisResult{
		{Name: "surface", Report: surfaceReport(t)},
		{Name: "speed", Report: speedReport(t)},
		{Name: "broken", Err: errors.New("boom")},
	}
	var buf bytes.Buffer
	FormatTextReport(&buf, results, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	out := buf.String()

	for _, want := range []string{
		"# Generated: 2026-01-02T03:04:05Z",
		"Example configurations:",
		"Break-even points (Ts/Tv, P):",
		"Ts/Tv Ratio: 0.01, Optimal N: 7",
		"# broken: failed: boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("text report must not contain ANSI escapes")
	}
}

func TestWriteReportToFile(t *testing.T) {
	t.Parallel()
	if err := WriteReportToFile("", nil); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "nested", "report.txt")
	results := []orchestration.AnalysisResult{{Name: "speed", Report: speedReport(t)}}
	if err := WriteReportToFile(path, results); err != nil {
		t.Fatalf("WriteReportToFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Speculative Decoding Report") {
		t.Errorf("unexpected report:\n%s", data)
	}
}
