package bubbletea

import tea "github.com/charmbracelet/bubbletea"

// SetRunning puts the model into the running state for tests.
func SetRunning(m Model) (Model, tea.Cmd) {
	m.running = true
	m.Input.Blur()
	return m, nil
}

// SetRunningWithCancel puts the model into the running state with a
// cancel function for tests.
func SetRunningWithCancel(m Model, cancel func()) (Model, tea.Cmd) {
	m.running = true
	m.cancel = cancel
	m.Input.Blur()
	return m, nil
}
