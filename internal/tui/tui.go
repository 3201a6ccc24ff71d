package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the preview and blocks until the user quits
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return fmt.Errorf("failed to create preview model: %w", err)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("preview error: %w", err)
	}

	if m, ok := finalModel.(Model); ok {
		m.closeWatcher()
	}
	return nil
}
