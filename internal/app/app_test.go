package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/agbru/specdec/internal/analysis"
	apperrors "github.com/agbru/specdec/internal/errors"
	"github.com/agbru/specdec/internal/logging"
	"github.com/agbru/specdec/internal/progress"
	"github.com/agbru/specdec/internal/render/mocks"
)

// stubAnalyzer is an analyzer whose outcome is fixed by the test.
type stubAnalyzer struct {
	name string
	fn   func(ctx context.Context) (analysis.Report, error)
}

func (s stubAnalyzer) Name() string { return s.name }

func (s stubAnalyzer) Analyze(ctx context.Context, _ chan<- progress.ProgressUpdate, _ int) (analysis.Report, error) {
	return s.fn(ctx)
}

func newApp(t *testing.T, args []string, opts ...AppOption) *Application {
	t.Helper()
	opts = append([]AppOption{WithLogger(logging.NewLogger(&bytes.Buffer{}, "test"))}, opts...)
	a, err := New(append([]string{"specdec"}, args...), &bytes.Buffer{}, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

func TestNew_Defaults(t *testing.T) {
	a := newApp(t, nil)
	if got := a.Factory.List(); len(got) != 2 || got[0] != analysis.SpeedName || got[1] != analysis.SurfaceName {
		t.Errorf("Factory.List() = %v", got)
	}
	if a.Renderer == nil || a.Recorder == nil {
		t.Error("New() should install a renderer and a recorder")
	}
}

func TestNew_ConfigError(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"specdec", "--points", "1"}, &errBuf)
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("New() error = %v, want ConfigError", err)
	}
	if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", apperrors.ExitCodeFor(err), apperrors.ExitErrorConfig)
	}
}

func TestNew_UnknownAnalysisForCustomFactory(t *testing.T) {
	factory := analysis.NewRegistry(stubAnalyzer{name: "only"})
	_, err := New([]string{"specdec", "--analysis", "surface"}, &bytes.Buffer{}, WithFactory(factory))
	if err == nil {
		t.Error("New() should reject an analysis the factory does not provide")
	}
}

func TestIsHelpError(t *testing.T) {
	_, err := New([]string{"specdec", "--help"}, &bytes.Buffer{})
	if !IsHelpError(err) {
		t.Errorf("IsHelpError(%v) = false", err)
	}
	if IsHelpError(errors.New("other")) {
		t.Error("IsHelpError(other) = true")
	}
}

func TestRun_WritesOutputs(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.txt")
	metricsPath := filepath.Join(dir, "specdec.prom")

	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	renderer.EXPECT().
		Render(gomock.Any(), gomock.Len(2)).
		Return([]string{filepath.Join(dir, "speculative_decoding.html")}, nil)

	a := newApp(t, []string{"--points", "5", "--output", reportPath, "--metrics-file", metricsPath, "--no-color"}, WithRenderer(renderer))

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, output:\n%s", code, out.String())
	}

	for _, want := range []string{"Optimal N", "Ts/Tv Ratio", "Charts written", "speculative_decoding.html", "Report saved to"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output does not contain %q", want)
		}
	}

	report, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(report), "Optimal N") {
		t.Error("report does not list the optimal N values")
	}

	prom, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("metrics not written: %v", err)
	}
	for _, want := range []string{"specdec_grid_points_total", `specdec_charts_rendered_total{format="html"} 1`} {
		if !strings.Contains(string(prom), want) {
			t.Errorf("metrics file does not contain %q", want)
		}
	}
}

func TestRun_Quiet(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	renderer.EXPECT().Render(gomock.Any(), gomock.Len(1)).Return(nil, nil)

	a := newApp(t, []string{"--analysis", "speed", "--quiet", "--no-color"}, WithRenderer(renderer))
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d", code)
	}
	if strings.Contains(out.String(), "Configuration") || strings.Contains(out.String(), "Charts written") {
		t.Errorf("quiet output contains banners:\n%s", out.String())
	}
}

func TestRun_RenderFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	renderer.EXPECT().
		Render(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.RenderError{Path: "x.html", Cause: errors.New("disk full")})

	a := newApp(t, []string{"--analysis", "speed", "--quiet"}, WithRenderer(renderer))
	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorRender {
		t.Errorf("Run() = %d, want %d", code, apperrors.ExitErrorRender)
	}
}

func TestRun_AnalysisFailureSkipsRendering(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl) // no calls expected

	factory := analysis.NewRegistry(stubAnalyzer{name: "broken", fn: func(context.Context) (analysis.Report, error) {
		return nil, errors.New("boom")
	}})
	a := newApp(t, []string{"--quiet"}, WithFactory(factory), WithRenderer(renderer))
	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorGeneric {
		t.Errorf("Run() = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
}

func TestRun_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	factory := analysis.NewRegistry(stubAnalyzer{name: "slow", fn: func(ctx context.Context) (analysis.Report, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}})
	a := newApp(t, []string{"--quiet", "--timeout", "20ms"}, WithFactory(factory), WithRenderer(renderer))

	start := time.Now()
	code := a.Run(context.Background(), &bytes.Buffer{})
	if code != apperrors.ExitErrorTimeout {
		t.Errorf("Run() = %d, want %d", code, apperrors.ExitErrorTimeout)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("Run() did not stop at the deadline")
	}
}

func TestRun_Completion(t *testing.T) {
	a := newApp(t, []string{"--completion", "bash"})
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d", code)
	}
	if !strings.Contains(out.String(), "complete -F _specdec_completions specdec") {
		t.Error("bash completion script not generated")
	}
}

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"--version"}, true},
		{[]string{"--points", "5", "-V"}, true},
		{[]string{"-version"}, true},
		{[]string{"--verbose"}, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.HasPrefix(buf.String(), "specdec "+Version) {
		t.Errorf("PrintVersion() = %q", buf.String())
	}
}
