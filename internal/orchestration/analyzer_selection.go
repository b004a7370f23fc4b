package orchestration

import (
	"github.com/agbru/specdec/internal/analysis"
)

// AllAnalyses selects every registered analysis.
const AllAnalyses = "all"

// GetAnalyzersToRun resolves the --analysis selection against factory.
// "all" returns every registered analyzer in sorted name order. An unknown
// name yields nil.
func GetAnalyzersToRun(name string, factory analysis.Factory) []analysis.Analyzer {
	if name == AllAnalyses {
		keys := factory.List()
		analyzers := make([]analysis.Analyzer, 0, len(keys))
		for _, k := range keys {
			if a, err := factory.Get(k); err == nil {
				analyzers = append(analyzers, a)
			}
		}
		return analyzers
	}
	if a, err := factory.Get(name); err == nil {
		return []analysis.Analyzer{a}
	}
	return nil
}
