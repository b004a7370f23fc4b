// Package orchestration runs the selected analyses concurrently and hands
// their reports to a presenter. It decouples the sweep logic from
// presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration
