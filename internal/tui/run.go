package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nadiprasetio/catat-cuan/internal/session"
)

// Run starts the chat loop and blocks until the user exits or the
// session reaches a terminal state.
func Run(ctx context.Context, engine Advancer, sessions session.Store, userID string) error {
	m, err := NewModel(ctx, engine, sessions, userID)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("chat ended with error: %w", err)
	}

	if fm, ok := final.(*Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
