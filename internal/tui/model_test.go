package tui

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/specdec/internal/analysis"
	"github.com/agbru/specdec/internal/config"
	"github.com/agbru/specdec/internal/model"
	"github.com/agbru/specdec/internal/orchestration"
)

func newTestModel(t *testing.T, analyzers []analysis.Analyzer) Model {
	t.Helper()
	m := NewModel(context.Background(), analyzers, config.Default(), "v1.0.0")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel_InitialState(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil)
	want := ExplorerState{Ratio: 0.1, P: 0.6, NMax: 10, Tv: model.DefaultTv}
	if m.state != want {
		t.Errorf("state = %+v, want %+v", m.state, want)
	}
	if m.eval.Best.N == 0 || len(m.eval.Speedups) != 10 {
		t.Errorf("initial evaluation not computed: %+v", m.eval)
	}
}

func TestModel_KeysMoveState(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		key  tea.KeyMsg
		want func(ExplorerState) bool
	}{
		{"right raises ratio", tea.KeyMsg{Type: tea.KeyRight}, func(s ExplorerState) bool { return s.Ratio == 0.11 }},
		{"h lowers ratio", runes("h"), func(s ExplorerState) bool { return s.Ratio == 0.09 }},
		{"up raises P", tea.KeyMsg{Type: tea.KeyUp}, func(s ExplorerState) bool { return s.P == 0.65 }},
		{"j lowers P", runes("j"), func(s ExplorerState) bool { return s.P == 0.55 }},
		{"plus widens N", runes("+"), func(s ExplorerState) bool { return s.NMax == 11 }},
		{"minus narrows N", runes("-"), func(s ExplorerState) bool { return s.NMax == 9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := press(t, newTestModel(t, nil), tt.key)
			if !tt.want(m.state) {
				t.Errorf("state = %+v", m.state)
			}
			if want := Evaluate(m.state); m.eval.Best != want.Best {
				t.Errorf("evaluation not refreshed: %+v, want %+v", m.eval.Best, want.Best)
			}
		})
	}
}

func TestModel_Reset(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil)
	initial := m.state
	m = press(t, m, runes("+"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(t, m, runes("r"))
	if m.state != initial {
		t.Errorf("state after reset = %+v, want %+v", m.state, initial)
	}
}

func TestModel_HelpToggle(t *testing.T) {
	t.Parallel()
	m := press(t, newTestModel(t, nil), runes("?"))
	if !m.help.ShowAll {
		t.Error("? should expand the help")
	}
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()
	_, cmd := newTestModel(t, nil).Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestModel_SysStats(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil)
	next, _ := m.Update(SysStatsMsg{CPUPercent: 25, MemPercent: 50, MemUsed: 3 << 30})
	m = next.(Model)
	if m.cpu.Last() != 25 || m.mem.Last() != 50 || m.memUsed != 3<<30 {
		t.Errorf("samples not recorded: cpu %v mem %v used %v", m.cpu.Last(), m.mem.Last(), m.memUsed)
	}
	view := m.View()
	if !strings.Contains(view, "CPU  25.0%") {
		t.Error("footer does not show the CPU sample")
	}
	if !strings.Contains(view, "(3.0 GiB)") {
		t.Error("footer does not show the used memory")
	}
}

func TestModel_View(t *testing.T) {
	t.Parallel()
	view := newTestModel(t, nil).View()
	for _, want := range []string{"Speculative Decoding Explorer", "Optimal N", "Break-even", "Speedup by N", "Press s"} {
		if !strings.Contains(view, want) {
			t.Errorf("view does not contain %q", want)
		}
	}
}

func TestModel_ViewBeforeResize(t *testing.T) {
	t.Parallel()
	m := NewModel(context.Background(), nil, config.Default(), "dev")
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q", got)
	}
}

func TestModel_SweepLifecycle(t *testing.T) {
	t.Parallel()
	analyzers := []analysis.Analyzer{analysis.NewSpeedAnalyzer(analysis.DefaultSpeedConfig())}
	m := newTestModel(t, analyzers)

	next, cmd := m.Update(runes("s"))
	m = next.(Model)
	if !m.sweep.running || m.sweep.generation != 1 || cmd == nil {
		t.Fatalf("sweep not started: %+v", m.sweep)
	}

	var mu sync.Mutex
	var sent []tea.Msg
	m.ref.send = func(msg tea.Msg) {
		mu.Lock()
		sent = append(sent, msg)
		mu.Unlock()
	}
	done, ok := cmd().(SweepDoneMsg)
	if !ok || done.Generation != 1 || done.ExitCode != 0 {
		t.Fatalf("sweep command returned %+v", done)
	}

	mu.Lock()
	msgs := sent
	mu.Unlock()
	for _, msg := range msgs {
		next, _ = m.Update(msg)
		m = next.(Model)
	}
	next, _ = m.Update(done)
	m = next.(Model)

	if m.sweep.running || m.sweep.progress != 1 {
		t.Errorf("sweep still running: %+v", m.sweep)
	}
	if len(m.sweep.reports) != 1 || m.sweep.reports[0].Name != analysis.SpeedName {
		t.Errorf("reports = %+v", m.sweep.reports)
	}
	if !strings.Contains(m.View(), "Sweep finished") {
		t.Error("view does not report the finished sweep")
	}
}

func TestModel_StaleSweepDone(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, []analysis.Analyzer{analysis.NewSpeedAnalyzer(analysis.DefaultSpeedConfig())})
	next, _ := m.Update(runes("s"))
	m = next.(Model)
	next, _ = m.Update(SweepDoneMsg{Generation: 0})
	m = next.(Model)
	if !m.sweep.running {
		t.Error("a stale SweepDoneMsg stopped the current sweep")
	}
	m.sweep.cancel()
}

func TestModel_RestartedSweepIgnoresPreviousRun(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, []analysis.Analyzer{analysis.NewSpeedAnalyzer(analysis.DefaultSpeedConfig())})
	m = press(t, m, runes("s"))
	m = press(t, m, runes("s"))
	defer m.sweep.cancel()
	if m.sweep.generation != 2 {
		t.Fatalf("generation = %d, want 2", m.sweep.generation)
	}

	old := []tea.Msg{
		ProgressMsg{AverageProgress: 0.9, Generation: 1},
		ReportMsg{Result: orchestration.AnalysisResult{Name: analysis.SpeedName}, Generation: 1},
		SweepErrorMsg{Err: context.Canceled, Generation: 1},
		SweepDoneMsg{ExitCode: 130, Generation: 1},
	}
	for _, msg := range old {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	if !m.sweep.running || m.sweep.progress != 0 {
		t.Errorf("previous run changed the current sweep: %+v", m.sweep)
	}
	if len(m.sweep.reports) != 0 || m.sweep.err != nil {
		t.Errorf("previous run leaked results: reports %d err %v", len(m.sweep.reports), m.sweep.err)
	}

	next, _ := m.Update(SweepDoneMsg{ExitCode: 0, Generation: 2})
	m = next.(Model)
	if m.sweep.running || m.sweep.exitCode != 0 {
		t.Errorf("current sweep not finished: %+v", m.sweep)
	}
	if strings.Contains(m.View(), "Error:") {
		t.Error("view shows an error from the previous run")
	}
}

func TestModel_SweepWithoutAnalyzers(t *testing.T) {
	t.Parallel()
	next, cmd := newTestModel(t, nil).Update(runes("s"))
	if cmd != nil || next.(Model).sweep.running {
		t.Error("s should do nothing without analyzers")
	}
}

func TestTUIResultPresenter(t *testing.T) {
	t.Parallel()
	var got []tea.Msg
	ref := &programRef{send: func(msg tea.Msg) { got = append(got, msg) }}
	p := &TUIResultPresenter{ref: ref, generation: 3}

	p.PresentReport(orchestration.AnalysisResult{Name: "surface"}, orchestration.PresentationOptions{}, nil)
	code := p.HandleError(context.DeadlineExceeded, 0, nil)

	if len(got) != 2 {
		t.Fatalf("sent %d messages, want 2", len(got))
	}
	if rm, ok := got[0].(ReportMsg); !ok || rm.Generation != 3 {
		t.Errorf("first message = %+v, want ReportMsg of generation 3", got[0])
	}
	if em, ok := got[1].(SweepErrorMsg); !ok || em.Generation != 3 {
		t.Errorf("second message = %+v, want SweepErrorMsg of generation 3", got[1])
	}
	if code != 2 {
		t.Errorf("HandleError() = %d, want the timeout exit code", code)
	}
}
