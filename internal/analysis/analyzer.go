// Package analysis implements the two parameter sweeps over the speculative
// decoding model: the speedup surface over (Ts/Tv, P) with the optimal batch
// size at every point, and the speed surface over (Ts/Tv, N) at a fixed
// acceptance probability.
package analysis

import (
	"context"
	"fmt"
	"sort"

	"github.com/agbru/specdec/internal/progress"
)

// Report is the outcome of one analysis. Concrete reports are
// *SurfaceReport and *SpeedReport.
type Report interface {
	// Title is a human readable description of the analysis.
	Title() string
	// GridPoints is the number of (parameters, N) combinations evaluated.
	GridPoints() int
}

// Analyzer runs one sweep of the model.
type Analyzer interface {
	// Name returns the registry key of the analyzer (e.g. "surface").
	Name() string
	// Analyze performs the sweep, reporting progress on progressChan tagged
	// with index. It returns early with ctx.Err() when ctx is canceled.
	Analyze(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int) (Report, error)
}

// Factory resolves analyzers by name.
type Factory interface {
	// List returns the registered names in sorted order.
	List() []string
	// Get returns the analyzer registered under name.
	Get(name string) (Analyzer, error)
}

// Registry is the default Factory implementation.
type Registry struct {
	analyzers map[string]Analyzer
}

// NewRegistry returns a registry holding the given analyzers, keyed by Name.
func NewRegistry(analyzers ...Analyzer) *Registry {
	r := &Registry{analyzers: make(map[string]Analyzer, len(analyzers))}
	for _, a := range analyzers {
		r.analyzers[a.Name()] = a
	}
	return r
}

// NewDefaultFactory registers the surface and speed analyzers with the given
// configurations.
func NewDefaultFactory(surface SurfaceConfig, speed SpeedConfig) *Registry {
	return NewRegistry(NewSurfaceAnalyzer(surface), NewSpeedAnalyzer(speed))
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.analyzers))
	for name := range r.analyzers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the analyzer registered under name.
func (r *Registry) Get(name string) (Analyzer, error) {
	a, ok := r.analyzers[name]
	if !ok {
		return nil, fmt.Errorf("unknown analysis %q", name)
	}
	return a, nil
}
