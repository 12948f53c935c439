// Package bubbletea provides a Bubble Tea TUI for the moda shopping
// assistant. It is a pure rendering collaborator: all stream
// reconciliation happens in the engine, and the TUI consumes read-only
// session snapshots.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/modachat/moda"
)

// SendFunc submits one user message. The onUpdate callback receives a
// read-only session snapshot after each reconciled event. The function
// blocks until the turn's stream ends or the context is cancelled.
type SendFunc func(ctx context.Context, text string, onUpdate func(moda.Session)) error

// Run creates and runs the Bubble Tea TUI program. It blocks until the
// program exits. The context is used for graceful shutdown: when
// cancelled, the program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// SnapshotMsg delivers a session snapshot to the Bubble Tea model.
type SnapshotMsg struct {
	Session moda.Session
}

// TurnDoneMsg signals that a turn's stream has ended.
type TurnDoneMsg struct {
	Err error
}
