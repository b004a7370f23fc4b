package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/specdec/internal/analysis"
	"github.com/agbru/specdec/internal/config"
	apperrors "github.com/agbru/specdec/internal/errors"
	"github.com/agbru/specdec/internal/format"
	"github.com/agbru/specdec/internal/orchestration"
	"github.com/agbru/specdec/internal/sysmon"
)

// Layout and sampling constants.
const (
	TickInterval     = 500 * time.Millisecond
	HistorySize      = 40
	SpeedupBarWidth  = 30
	progressBarWidth = 30
)

// sweepState tracks the background run of the configured analyses.
type sweepState struct {
	cancel     context.CancelFunc
	generation uint64
	running    bool
	progress   float64
	eta        time.Duration
	reports    []orchestration.AnalysisResult
	err        error
	exitCode   int
}

// Model is the root bubbletea model of the explorer.
type Model struct {
	header HeaderModel
	keymap KeyMap
	help   help.Model

	initial ExplorerState
	state   ExplorerState
	eval    Evaluation

	cpu     *RingBuffer
	mem     *RingBuffer
	memUsed uint64

	sweep     sweepState
	analyzers []analysis.Analyzer

	parentCtx context.Context
	ref       *programRef
	width     int
	height    int
}

// NewModel creates the explorer, starting at the lowest example ratio and
// the configured P and N range.
func NewModel(parentCtx context.Context, analyzers []analysis.Analyzer, cfg config.AppConfig, version string) Model {
	ratio := 0.1
	if len(cfg.ExampleRatios) > 0 {
		ratio = cfg.ExampleRatios[0]
	}
	state := ExplorerState{Ratio: ratio, P: cfg.P, NMax: cfg.NMax, Tv: cfg.Tv}
	return Model{
		header:    NewHeaderModel(version),
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		initial:   state,
		state:     state,
		eval:      Evaluate(state),
		cpu:       NewRingBuffer(HistorySize),
		mem:       NewRingBuffer(HistorySize),
		analyzers: analyzers,
		parentCtx: parentCtx,
		ref:       &programRef{},
	}
}

// Init starts the sampling ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), sampleSysStatsCmd(m.parentCtx))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleSysStatsCmd(m.parentCtx), tickCmd())

	case SysStatsMsg:
		m.cpu.Push(msg.CPUPercent)
		m.mem.Push(msg.MemPercent)
		m.memUsed = msg.MemUsed
		return m, nil

	case ProgressMsg:
		if msg.Generation == m.sweep.generation && m.sweep.running {
			m.sweep.progress = msg.AverageProgress
			m.sweep.eta = msg.ETA
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ReportMsg:
		if msg.Generation == m.sweep.generation {
			m.sweep.reports = append(m.sweep.reports, msg.Result)
		}
		return m, nil

	case SweepErrorMsg:
		if msg.Generation == m.sweep.generation {
			m.sweep.err = msg.Err
		}
		return m, nil

	case SweepDoneMsg:
		if msg.Generation != m.sweep.generation {
			return m, nil
		}
		m.sweep.running = false
		m.sweep.progress = 1
		m.sweep.exitCode = msg.ExitCode
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.sweep.cancel != nil {
			m.sweep.cancel()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keymap.RatioDown):
		m.state.MoveRatio(-1)
	case key.Matches(msg, m.keymap.RatioUp):
		m.state.MoveRatio(1)
	case key.Matches(msg, m.keymap.PUp):
		m.state.MoveP(1)
	case key.Matches(msg, m.keymap.PDown):
		m.state.MoveP(-1)
	case key.Matches(msg, m.keymap.MoreN):
		m.state.MoveN(1)
	case key.Matches(msg, m.keymap.FewerN):
		m.state.MoveN(-1)
	case key.Matches(msg, m.keymap.Reset):
		m.state = m.initial
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keymap.Sweep):
		return m.startSweep()
	default:
		return m, nil
	}
	m.eval = Evaluate(m.state)
	return m, nil
}

// startSweep cancels any running sweep and launches a new one.
func (m Model) startSweep() (tea.Model, tea.Cmd) {
	if len(m.analyzers) == 0 {
		return m, nil
	}
	if m.sweep.cancel != nil {
		m.sweep.cancel()
	}
	ctx, cancel := context.WithCancel(m.parentCtx)
	m.sweep = sweepState{
		cancel:     cancel,
		generation: m.sweep.generation + 1,
		running:    true,
	}
	return m, runSweepCmd(m.ref, ctx, m.analyzers, m.sweep.generation)
}

// View renders the explorer.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewParameters(), m.viewSpeedups())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		body,
		m.viewSweep(),
		m.viewFooter(),
		m.help.View(m.keymap),
	)
}

func (m Model) viewParameters() string {
	ev := m.eval
	rows := []string{
		titleStyle.Render("Parameters"),
		row("Ts/Tv", fmt.Sprintf("%.2f", m.state.Ratio)),
		row("P", fmt.Sprintf("%.2f", m.state.P)),
		row("N range", fmt.Sprintf("1-%d", m.state.NMax)),
		"",
		titleStyle.Render("Optimum"),
		row("Optimal N", bestStyle.Render(fmt.Sprintf("%d", ev.Best.N))),
		row("Speedup", speedupStyle(ev.Best.Value).Render(fmt.Sprintf("%.2fx", ev.Best.Value))),
		row("Time/token", fmt.Sprintf("%.4f", ev.TimePerToken)),
		row("Speed", fmt.Sprintf("%.2f tokens/unit", ev.Speed)),
		row("Break-even", fmt.Sprintf("Ts/Tv < %.3f", ev.BreakEven)),
	}
	return panelStyle.Render(strings.Join(rows, "\n"))
}

func row(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-12s", label)) + valueStyle.Render(value)
}

// viewSpeedups draws one bar per N, scaled to the best speedup.
func (m Model) viewSpeedups() string {
	ev := m.eval
	lines := []string{titleStyle.Render("Speedup by N")}
	lines = append(lines, labelStyle.Render("     ")+RenderSparkline(ev.Speedups, 0, ev.Best.Value))
	for i, s := range ev.Speedups {
		width := 0
		if ev.Best.Value > 0 {
			width = int(s / ev.Best.Value * SpeedupBarWidth)
		}
		bar := speedupStyle(s).Render(strings.Repeat("█", width))
		marker := " "
		if i == ev.Best.Index {
			marker = bestStyle.Render("*")
		}
		lines = append(lines, fmt.Sprintf("%s%3d %s %.3f", marker, i+1, bar, s))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) viewSweep() string {
	sw := m.sweep
	var b strings.Builder
	switch {
	case sw.running:
		fmt.Fprintf(&b, "Sweeping %s", format.FormatProgressBarWithETA(sw.progress, sw.eta, progressBarWidth))
	case sw.generation == 0:
		b.WriteString(labelStyle.Render("Press s to run the configured sweeps."))
	default:
		fmt.Fprintf(&b, "Sweep finished (exit code %d)", sw.exitCode)
	}
	for _, r := range sw.reports {
		fmt.Fprintf(&b, "\n%s", sweepStyle.Render(fmt.Sprintf("%-8s %s, %s grid points in %s",
			r.Name, r.Report.Title(), format.FormatNumberString(fmt.Sprint(r.Report.GridPoints())),
			format.FormatExecutionDuration(r.Duration))))
	}
	if sw.err != nil {
		fmt.Fprintf(&b, "\n%s", errorStyle.Render("Error: "+sw.err.Error()))
	}
	return panelStyle.Render(b.String())
}

func (m Model) viewFooter() string {
	stats := sysmon.Stats{CPUPercent: m.cpu.Last(), MemPercent: m.mem.Last(), MemUsed: m.memUsed}
	return footerStatsStyle.Render(fmt.Sprintf(" CPU %5.1f%% ", stats.CPUPercent)) +
		cpuSparkStyle.Render(RenderSparkline(m.cpu.Slice(), 0, 100)) +
		footerStatsStyle.Render(fmt.Sprintf("  MEM %5.1f%% (%s) ", stats.MemPercent, sysmon.FormatBytes(stats.MemUsed))) +
		memSparkStyle.Render(RenderSparkline(m.mem.Slice(), 0, 100))
}

// Run is the public entry point for the explorer. It returns the exit code.
func Run(ctx context.Context, analyzers []analysis.Analyzer, cfg config.AppConfig, version string) int {
	// Rebuild styles from the theme set by InitTheme.
	initTUIStyles()

	model := NewModel(ctx, analyzers, cfg, version)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if m, ok := finalModel.(Model); ok && m.sweep.cancel != nil {
		m.sweep.cancel()
	}
	if err != nil {
		if apperrors.IsContextError(err) || apperrors.IsContextError(ctx.Err()) {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok && m.sweep.err != nil {
		if m.sweep.exitCode != apperrors.ExitSuccess {
			return m.sweep.exitCode
		}
		// The program quit before the failed sweep reported its exit code.
		return apperrors.ExitCodeFor(m.sweep.err)
	}
	return apperrors.ExitSuccess
}

// runSweepCmd runs the analyses through the orchestrator, bridging progress
// and reports into the program.
func runSweepCmd(ref *programRef, ctx context.Context, analyzers []analysis.Analyzer, gen uint64) tea.Cmd {
	return func() tea.Msg {
		presenter := &TUIResultPresenter{ref: ref, generation: gen}
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		results := orchestration.ExecuteAnalyses(ctx, analyzers, reporter, io.Discard)
		code := orchestration.AnalyzeResults(results, orchestration.PresentationOptions{Quiet: true}, presenter, presenter, io.Discard)
		return SweepDoneMsg{ExitCode: code, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleSysStatsCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample(ctx)
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent, MemUsed: s.MemUsed}
	}
}
