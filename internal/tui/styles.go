package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/specdec/internal/ui"
)

// Style variables for the explorer, built from the ui theme by
// initTUIStyles.
var (
	panelStyle       lipgloss.Style
	headerStyle      lipgloss.Style
	titleStyle       lipgloss.Style
	versionStyle     lipgloss.Style
	elapsedStyle     lipgloss.Style
	labelStyle       lipgloss.Style
	valueStyle       lipgloss.Style
	gainStyle        lipgloss.Style
	lossStyle        lipgloss.Style
	bestStyle        lipgloss.Style
	sweepStyle       lipgloss.Style
	errorStyle       lipgloss.Style
	cpuSparkStyle    lipgloss.Style
	memSparkStyle    lipgloss.Style
	footerStatsStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme.
// Called at package init and again from Run after InitTheme.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	versionStyle = lipgloss.NewStyle().Foreground(t.Dim)
	elapsedStyle = lipgloss.NewStyle().Foreground(t.Accent)

	labelStyle = lipgloss.NewStyle().Foreground(t.Dim)
	valueStyle = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	gainStyle = lipgloss.NewStyle().Foreground(t.Gain).Bold(true)
	lossStyle = lipgloss.NewStyle().Foreground(t.Loss).Bold(true)
	bestStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	sweepStyle = lipgloss.NewStyle().Foreground(t.Info)
	errorStyle = lipgloss.NewStyle().Foreground(t.Loss)

	cpuSparkStyle = lipgloss.NewStyle().Foreground(t.Accent)
	memSparkStyle = lipgloss.NewStyle().Foreground(t.Warning)
	footerStatsStyle = lipgloss.NewStyle().Foreground(t.Dim)
}

// speedupStyle picks the gain or loss style for a speedup value.
func speedupStyle(s float64) lipgloss.Style {
	if s >= 1 {
		return gainStyle
	}
	return lossStyle
}
