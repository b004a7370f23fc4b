package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/specdec/internal/analysis"
	"github.com/agbru/specdec/internal/orchestration"
	"github.com/agbru/specdec/internal/ui"
)

// FormatTextReport writes the plain-text report of every successful result
// to w. It never emits color codes.
func FormatTextReport(w io.Writer, results []orchestration.AnalysisResult, generated time.Time) {
	fmt.Fprintf(w, "# Speculative Decoding Report\n")
	fmt.Fprintf(w, "# Generated: %s\n", generated.Format(time.RFC3339))
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "\n# %s: failed: %v\n", res.Name, res.Err)
			continue
		}
		fmt.Fprintf(w, "\n# %s\n# Analysis: %s, %d grid points, %s\n", res.Report.Title(), res.Name, res.Report.GridPoints(), res.Duration)
		switch rep := res.Report.(type) {
		case *analysis.SurfaceReport:
			fmt.Fprintf(w, "\nExample configurations:\n")
			for _, ex := range rep.Examples {
				fmt.Fprintln(w, FormatExample(ex))
			}
			fmt.Fprintf(w, "\nBreak-even points (Ts/Tv, P):\n")
			for _, pt := range rep.BreakEven {
				fmt.Fprintf(w, "%.4f, %.4f\n", pt.X, pt.Y)
			}
		case *analysis.SpeedReport:
			fmt.Fprintf(w, "\nOptimal N for each Ts/Tv ratio:\n")
			for _, pt := range rep.Optimal {
				fmt.Fprintln(w, FormatOptimalPoint(pt))
			}
		}
	}
}

// WriteReportToFile writes the text report to path, creating parent
// directories as needed. An empty path is a no-op.
func WriteReportToFile(path string, results []orchestration.AnalysisResult) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	bw := bufio.NewWriter(file)
	FormatTextReport(bw, results, time.Now())
	if err := bw.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return file.Close()
}

// DisplayReportSaved confirms where the text report went.
func DisplayReportSaved(path string, out io.Writer) {
	fmt.Fprintf(out, "\n%sReport saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}
