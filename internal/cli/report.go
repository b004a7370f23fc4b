package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/agbru/specdec/internal/analysis"
	"github.com/agbru/specdec/internal/format"
	"github.com/agbru/specdec/internal/model"
	"github.com/agbru/specdec/internal/ui"
)

// FormatExample renders one example configuration of the surface analysis.
func FormatExample(ex analysis.Example) string {
	return fmt.Sprintf("Ratio=%.1f, P=%.1f: Optimal N=%d, Speedup=%.2fx", ex.Ratio, ex.P, ex.OptimalN, ex.Speedup)
}

// FormatOptimalPoint renders the best N of one Ts/Tv ratio.
func FormatOptimalPoint(pt analysis.OptimalPoint) string {
	return fmt.Sprintf("Ts/Tv Ratio: %.2f, Optimal N: %d, Speed: %.2f Tokens/time unit", pt.Ratio, pt.N, pt.Speed)
}

func displayHeader(title string, points int, d time.Duration, out io.Writer) {
	fmt.Fprintf(out, "\n%s--- %s ---%s\n", ui.ColorBold(), title, ui.ColorReset())
	fmt.Fprintf(out, "Evaluated %s%s%s grid points in %s%s%s.\n",
		ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(points)), ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(d), ui.ColorReset())
}

// DisplaySurfaceReport prints the example table and the break-even summary.
// In quiet mode only the example lines are printed.
func DisplaySurfaceReport(rep *analysis.SurfaceReport, d time.Duration, verbose, quiet bool, out io.Writer) {
	if quiet {
		for _, ex := range rep.Examples {
			fmt.Fprintln(out, FormatExample(ex))
		}
		return
	}

	displayHeader(rep.Title(), rep.GridPoints(), d, out)
	fmt.Fprintf(out, "\nExample configurations:\n")
	for _, ex := range rep.Examples {
		fmt.Fprintf(out, "Ratio=%.1f, P=%.1f: Optimal N=%s%d%s, Speedup=%s%.2fx%s\n",
			ex.Ratio, ex.P, ui.ColorMagenta(), ex.OptimalN, ui.ColorReset(),
			ui.SpeedupColor(ex.Speedup), ex.Speedup, ui.ColorReset())
	}

	fmt.Fprintf(out, "\nBreak-even curve: %d interpolated points (speedup = 1).\n", len(rep.BreakEven))
	if verbose {
		DisplayBreakEvenTable(rep, out)
	}
}

// DisplayBreakEvenTable lists every break-even point next to the
// closed-form ratio (P + ... + P^N) / N maximized over the N range.
func DisplayBreakEvenTable(rep *analysis.SurfaceReport, out io.Writer) {
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "P\tTs/Tv (grid)\tTs/Tv (closed form)\t")
	for _, pt := range rep.BreakEven {
		fmt.Fprintf(tw, "%.3f\t%.4f\t%.4f\t\n", pt.Y, pt.X, model.BestBreakEvenRatio(pt.Y, rep.Config.Candidates))
	}
	tw.Flush()
}

// DisplaySpeedReport prints the optimal N and speed for every ratio. In
// quiet mode the header is omitted.
func DisplaySpeedReport(rep *analysis.SpeedReport, d time.Duration, quiet bool, out io.Writer) {
	if !quiet {
		displayHeader(rep.Title(), rep.GridPoints(), d, out)
		fmt.Fprintf(out, "\nOptimal N for each Ts/Tv ratio:\n")
	}
	for _, pt := range rep.Optimal {
		fmt.Fprintln(out, FormatOptimalPoint(pt))
	}
}
