package render

import (
	"context"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/agbru/specdec/internal/analysis"
	apperrors "github.com/agbru/specdec/internal/errors"
	"github.com/agbru/specdec/internal/model"
)

// File names written by PNGRenderer.
const (
	BreakEvenPNG = "break_even.png"
	OptimalNPNG  = "optimal_n.png"
)

const (
	pngWidth  = 1024
	pngHeight = 640
)

// PNGRenderer writes static line charts with go-chart.
type PNGRenderer struct {
	Dir string
}

// Render implements Renderer. Reports with no PNG view are skipped.
func (p *PNGRenderer) Render(ctx context.Context, reports []analysis.Report) (paths []string, err error) {
	_, span := startSpan(ctx, "png", len(reports))
	defer func() { endSpan(span, err) }()

	for _, rep := range reports {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		var graph chart.Chart
		var name string
		switch r := rep.(type) {
		case *analysis.SurfaceReport:
			if len(r.BreakEven) < 2 {
				continue
			}
			graph, name = BreakEvenChart(r), BreakEvenPNG
		case *analysis.SpeedReport:
			if len(r.Optimal) < 2 {
				continue
			}
			graph, name = OptimalNChart(r), OptimalNPNG
		default:
			continue
		}
		path, err := p.write(name, graph)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (p *PNGRenderer) write(name string, graph chart.Chart) (string, error) {
	f, path, err := createFile(p.Dir, name)
	if err != nil {
		return path, err
	}
	if err := WritePNG(f, graph); err != nil {
		f.Close()
		return path, apperrors.RenderError{Path: path, Cause: err}
	}
	if err := f.Close(); err != nil {
		return path, apperrors.RenderError{Path: path, Cause: err}
	}
	return path, nil
}

// BreakEvenChart plots the interpolated break-even ratio against P next to
// the closed-form ratio of the best candidate N.
func BreakEvenChart(r *analysis.SurfaceReport) chart.Chart {
	xs := make([]float64, len(r.BreakEven))
	ys := make([]float64, len(r.BreakEven))
	for i, pt := range r.BreakEven {
		xs[i], ys[i] = pt.Y, pt.X
	}

	closed := make([]float64, len(r.Config.Acceptance))
	for i, p := range r.Config.Acceptance {
		closed[i] = model.BestBreakEvenRatio(p, r.Config.Candidates)
	}

	graph := chart.Chart{
		Title:  "Break-even Ts/Tv by acceptance probability",
		Width:  pngWidth,
		Height: pngHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{Name: "P", ValueFormatter: formatFloat("%.2f")},
		YAxis: chart.YAxis{Name: "Ts/Tv", ValueFormatter: formatFloat("%.2f")},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Interpolated",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "Closed form",
				XValues: r.Config.Acceptance,
				YValues: closed,
				Style: chart.Style{
					StrokeColor:     chart.ColorRed,
					StrokeWidth:     1.5,
					StrokeDashArray: []float64{5, 5},
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph
}

// OptimalNChart plots the optimal N and its speed against Ts/Tv, speed on
// the secondary axis.
func OptimalNChart(r *analysis.SpeedReport) chart.Chart {
	xs := make([]float64, len(r.Optimal))
	ns := make([]float64, len(r.Optimal))
	speeds := make([]float64, len(r.Optimal))
	for i, pt := range r.Optimal {
		xs[i], ns[i], speeds[i] = pt.Ratio, float64(pt.N), pt.Speed
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Optimal N and speed (P=%.1f)", r.Config.P),
		Width:  pngWidth,
		Height: pngHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis:          chart.XAxis{Name: "Ts/Tv", ValueFormatter: formatFloat("%.2f")},
		YAxis:          chart.YAxis{Name: "Optimal N", ValueFormatter: formatFloat("%.0f")},
		YAxisSecondary: chart.YAxis{Name: "Tokens/time unit", ValueFormatter: formatFloat("%.2f")},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Optimal N",
				XValues: xs,
				YValues: ns,
				Style:   chart.Style{StrokeColor: drawing.ColorFromHex("d73027"), StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "Speed",
				YAxis:   chart.YAxisSecondary,
				XValues: xs,
				YValues: speeds,
				Style:   chart.Style{StrokeColor: drawing.ColorFromHex("4575b4"), StrokeWidth: 2},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph
}

func formatFloat(layout string) chart.ValueFormatter {
	return func(v interface{}) string {
		if f, ok := v.(float64); ok {
			return fmt.Sprintf(layout, f)
		}
		return fmt.Sprint(v)
	}
}

// WritePNG encodes graph as PNG into w.
func WritePNG(w io.Writer, graph chart.Chart) error {
	return graph.Render(chart.PNG, w)
}
