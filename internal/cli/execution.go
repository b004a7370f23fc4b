package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/specdec/internal/analysis"
	"github.com/agbru/specdec/internal/config"
	"github.com/agbru/specdec/internal/ui"
)

// PrintExecutionConfig shows the sweep parameters and the environment.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Grid: %s%d%s samples of Ts/Tv in [%.2f, %.2f], P in [%.2f, %.2f], Tv = %g.\n",
		ui.ColorCyan(), cfg.Points, ui.ColorReset(), cfg.RatioMin, cfg.RatioMax, cfg.PMin, cfg.PMax, cfg.Tv)
	fmt.Fprintf(out, "Surface N range: %s%d-%d%s. Speed analysis: P = %s%.2f%s, N = 1-%d.\n",
		ui.ColorMagenta(), cfg.NMin, cfg.NMax, ui.ColorReset(), ui.ColorMagenta(), cfg.P, ui.ColorReset(), cfg.SpeedNMax)
	fmt.Fprintf(out, "Charts: %s%s%s in %s, timeout %s%s%s.\n",
		ui.ColorYellow(), cfg.Format, ui.ColorReset(), cfg.OutDir, ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode announces which analyses are about to run.
func PrintExecutionMode(analyzers []analysis.Analyzer, out io.Writer) {
	names := make([]string, len(analyzers))
	for i, a := range analyzers {
		names[i] = ui.ColorGreen() + a.Name() + ui.ColorReset()
	}
	if len(analyzers) > 1 {
		fmt.Fprintf(out, "Execution mode: concurrent sweep of %s.\n", strings.Join(names, ", "))
	} else {
		fmt.Fprintf(out, "Execution mode: %s analysis.\n", strings.Join(names, ""))
	}
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
