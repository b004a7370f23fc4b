package render

import (
	"context"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/agbru/specdec/internal/analysis"
	apperrors "github.com/agbru/specdec/internal/errors"
	"github.com/agbru/specdec/internal/model"
)

// HTMLFile is the name of the interactive page written by HTMLRenderer.
const HTMLFile = "speculative_decoding.html"

const (
	chartWidth  = "1000px"
	chartHeight = "720px"
)

// nColors is the palette of the optimal-N visual map, low N to high N.
var nColors = []string{"#313695", "#4575b4", "#74add1", "#abd9e9", "#fee090", "#fdae61", "#f46d43", "#d73027", "#a50026"}

// HTMLRenderer writes every chart to one go-echarts page.
type HTMLRenderer struct {
	Dir string
}

// Render implements Renderer.
func (h *HTMLRenderer) Render(ctx context.Context, reports []analysis.Report) (paths []string, err error) {
	_, span := startSpan(ctx, "html", len(reports))
	defer func() { endSpan(span, err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page := components.NewPage().SetPageTitle("Speculative Decoding")
	for _, rep := range reports {
		switch r := rep.(type) {
		case *analysis.SurfaceReport:
			page.AddCharts(SpeedupSurface(r), OptimalNScatter(r), BreakEvenLine(r))
		case *analysis.SpeedReport:
			page.AddCharts(SpeedSurface(r), OptimalSpeedScatter(r))
		}
	}

	f, path, err := createFile(h.Dir, HTMLFile)
	if err != nil {
		return nil, err
	}
	if err := page.Render(f); err != nil {
		f.Close()
		return nil, apperrors.RenderError{Path: path, Cause: err}
	}
	if err := f.Close(); err != nil {
		return nil, apperrors.RenderError{Path: path, Cause: err}
	}
	return []string{path}, nil
}

func globalOpts(title, subtitle, x, y, z string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: x, Type: "value"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: y, Type: "value"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: z, Type: "value"}),
	}
}

// SpeedupSurface is the best-speedup surface over (Ts/Tv, P) together with
// the translucent plane at speedup 1.
func SpeedupSurface(r *analysis.SurfaceReport) *charts.Surface3D {
	c := charts.NewSurface3D()
	c.SetGlobalOptions(globalOpts(r.Title(), "Speedup surface with the break-even plane", "Ts/Tv", "P", "Speedup")...)

	cfg := r.Config
	surface := make([]opts.Chart3DData, 0, len(cfg.Ratios)*len(cfg.Acceptance))
	plane := make([]opts.Chart3DData, 0, len(cfg.Ratios)*len(cfg.Acceptance))
	for i, p := range cfg.Acceptance {
		for j, ratio := range cfg.Ratios {
			surface = append(surface, opts.Chart3DData{Value: []interface{}{ratio, p, r.SpeedupMesh[i][j]}})
			plane = append(plane, opts.Chart3DData{Value: []interface{}{ratio, p, 1.0}})
		}
	}
	c.AddSeries("Speedup", surface)
	c.AddSeries("Speedup = 1", plane, charts.WithItemStyleOpts(opts.ItemStyle{Color: "rgba(255, 0, 0, 0.3)"}))
	return c
}

// OptimalNScatter shows the same grid colored by the optimal N.
func OptimalNScatter(r *analysis.SurfaceReport) *charts.Scatter3D {
	c := charts.NewScatter3D()
	lo, hi := model.Bounds(r.Config.Candidates)
	c.SetGlobalOptions(append(globalOpts("Optimal N", fmt.Sprintf("Color is the optimal N (%d-%d)", lo, hi), "Ts/Tv", "P", "Speedup"),
		charts.WithVisualMapOpts(opts.VisualMap{
			Type:       "continuous",
			Dimension:  "3",
			Min:        float32(lo),
			Max:        float32(hi),
			Calculable: opts.Bool(true),
			Text:       []string{"N max", "N min"},
			InRange:    &opts.VisualMapInRange{Color: nColors},
		}))...)

	cfg := r.Config
	data := make([]opts.Chart3DData, 0, len(cfg.Ratios)*len(cfg.Acceptance))
	for i, p := range cfg.Acceptance {
		for j, ratio := range cfg.Ratios {
			data = append(data, opts.Chart3DData{Value: []interface{}{ratio, p, r.SpeedupMesh[i][j], r.OptimalNMesh[i][j]}})
		}
	}
	c.AddSeries("Optimal N", data)
	return c
}

// BreakEvenLine traces the interpolated break-even points at speedup 1.
func BreakEvenLine(r *analysis.SurfaceReport) *charts.Line3D {
	c := charts.NewLine3D()
	c.SetGlobalOptions(globalOpts("Break-even curve", "Where the best speedup crosses 1", "Ts/Tv", "P", "Speedup")...)

	data := make([]opts.Chart3DData, len(r.BreakEven))
	for i, pt := range r.BreakEven {
		data[i] = opts.Chart3DData{Value: []interface{}{pt.X, pt.Y, pt.Z}}
	}
	c.AddSeries("Break-even", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: "#000000"}))
	return c
}

// SpeedSurface is the speed over (Ts/Tv, N) at fixed P.
func SpeedSurface(r *analysis.SpeedReport) *charts.Surface3D {
	c := charts.NewSurface3D()
	c.SetGlobalOptions(globalOpts(r.Title(), "Tokens per time unit", "Ts/Tv", "N", "Speed")...)

	cfg := r.Config
	data := make([]opts.Chart3DData, 0, len(cfg.Ratios)*len(cfg.Candidates))
	for k, n := range cfg.Candidates {
		for j, ratio := range cfg.Ratios {
			data = append(data, opts.Chart3DData{Value: []interface{}{ratio, n, r.SpeedMesh[k][j]}})
		}
	}
	c.AddSeries("Speed", data)
	return c
}

// OptimalSpeedScatter marks the best N of every ratio on the speed surface.
func OptimalSpeedScatter(r *analysis.SpeedReport) *charts.Scatter3D {
	c := charts.NewScatter3D()
	c.SetGlobalOptions(globalOpts(fmt.Sprintf("Optimal N (P=%.1f)", r.Config.P), "Best N and its speed for each ratio", "Ts/Tv", "N", "Speed")...)

	data := make([]opts.Chart3DData, len(r.Optimal))
	for i, pt := range r.Optimal {
		data[i] = opts.Chart3DData{Value: []interface{}{pt.Ratio, pt.N, pt.Speed}}
	}
	c.AddSeries("Optimal N", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: "#d73027"}))
	return c
}
