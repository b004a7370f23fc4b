//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks

package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/specdec/internal/analysis"
	apperrors "github.com/agbru/specdec/internal/errors"
)

var tracer = otel.Tracer("github.com/agbru/specdec/internal/render")

// Renderer writes charts for a set of reports and returns the paths of the
// files it created.
type Renderer interface {
	Render(ctx context.Context, reports []analysis.Report) ([]string, error)
}

// New returns the renderer for the requested outputs. With neither HTML nor
// PNG it returns a renderer that writes nothing.
func New(dir string, html, png bool) Renderer {
	var rs multiRenderer
	if html {
		rs = append(rs, &HTMLRenderer{Dir: dir})
	}
	if png {
		rs = append(rs, &PNGRenderer{Dir: dir})
	}
	return rs
}

// multiRenderer runs each renderer in turn and joins their errors.
type multiRenderer []Renderer

func (m multiRenderer) Render(ctx context.Context, reports []analysis.Report) ([]string, error) {
	var paths []string
	var errs []error
	for _, r := range m {
		p, err := r.Render(ctx, reports)
		paths = append(paths, p...)
		errs = append(errs, err)
	}
	return paths, errors.Join(errs...)
}

// createFile opens path for writing below dir, creating dir first.
func createFile(dir, name string) (*os.File, string, error) {
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, path, apperrors.RenderError{Path: path, Cause: err}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, path, apperrors.RenderError{Path: path, Cause: err}
	}
	return f, path, nil
}

func startSpan(ctx context.Context, format string, reports int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "render."+format, trace.WithAttributes(
		attribute.String("render.format", format),
		attribute.Int("render.reports", reports),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
