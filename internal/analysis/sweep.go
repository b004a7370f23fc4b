package analysis

import (
	"context"
	"runtime"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/specdec/internal/progress"
)

var tracer = otel.Tracer("github.com/agbru/specdec/internal/analysis")

// sweepRows evaluates rowFn for every row index in [0, rows) on a bounded
// pool of goroutines. Rows are independent and each writes only its own
// slot of the output mesh. Progress is reported once per finished row.
func sweepRows(ctx context.Context, rows int, report progress.ProgressCallback, rowFn func(i int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	var done atomic.Int64
	for i := range rows {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rowFn(i)
			report(float64(done.Add(1)) / float64(rows))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// A cancellation after the last row started still fails the sweep.
	return ctx.Err()
}

// startSpan opens a tracing span for one analysis.
func startSpan(ctx context.Context, name string, points int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "analysis."+name,
		trace.WithAttributes(
			attribute.String("analysis.name", name),
			attribute.Int("analysis.grid_points", points),
		))
}

// endSpan records err on span, if any, and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
