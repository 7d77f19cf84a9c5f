package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"RRGView/internal/collector"
	"RRGView/internal/model"
)

// Run shows the interactive chart and blocks until the user quits. It
// returns the final toggle state so the caller can persist the session.
func Run(res *collector.Result, timeframe string, state *model.SessionState) (showLabels, curved bool, err error) {
	m := New(res, timeframe, state)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	final, err := p.Run()
	if err != nil {
		return false, false, fmt.Errorf("run chart: %w", err)
	}
	fm, ok := final.(Model)
	if !ok {
		return m.showLabels, m.curved, nil
	}
	showLabels, curved = fm.Toggles()
	return showLabels, curved, nil
}
