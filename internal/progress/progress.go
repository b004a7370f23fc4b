// Package progress defines the progress messages exchanged between running
// analyses and whatever is displaying them.
package progress

// ProgressUpdate is a single progress notification from an analyzer.
type ProgressUpdate struct {
	// AnalyzerIndex identifies the sender among the analyzers of a run.
	AnalyzerIndex int
	// Value is the completed fraction, from 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives the completed fraction of a single analysis.
type ProgressCallback func(value float64)

// ChannelReporter returns a callback that forwards values to progressChan
// tagged with index. A nil channel yields a no-op callback.
func ChannelReporter(progressChan chan<- ProgressUpdate, index int) ProgressCallback {
	if progressChan == nil {
		return func(float64) {}
	}
	return func(value float64) {
		progressChan <- ProgressUpdate{AnalyzerIndex: index, Value: value}
	}
}
