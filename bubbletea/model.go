package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/modachat/moda"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the moda TUI. It renders the latest
// session snapshot; it never mutates conversation state itself.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	send   SendFunc
	styles Styles

	session moda.Session
	blocks  []EntryBlock

	running bool
	cancel  context.CancelFunc
	snapCh  chan moda.Session
	doneCh  chan error
	err     error
	ready   bool
}

// New creates a new TUI Model with the given send function, initial
// session snapshot, and theme.
func New(send SendFunc, session moda.Session, theme moda.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "무엇을 찾으시나요?"
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	m := Model{
		Input:   ti,
		send:    send,
		styles:  NewStyles(theme),
		session: session,
	}
	m.blocks = buildBlocks(session, m.styles)
	return m
}

// Running returns whether a turn is currently streaming.
func (m Model) Running() bool { return m.running }

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SnapshotMsg:
		m.session = msg.Session
		m.blocks = buildBlocks(m.session, m.styles)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		if m.snapCh != nil {
			return m, listenForSnapshot(m.snapCh, m.doneCh)
		}
		return m, nil

	case TurnDoneMsg:
		m.running = false
		m.cancel = nil
		m.snapCh = nil
		m.doneCh = nil
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
		}
		cmd := m.Input.Focus()
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Pass remaining messages to sub-components.
	// Viewport always receives messages for scrolling (keyboard and mouse).
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := msg.Height - inputH - statusHeight - borderHeight

	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}

	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		// The engine rejects a second send while a turn is open; the UI
		// guards here as well so input stays disabled.
		if m.running {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitInput(text)
	}

	// When idle, pass keys to both input (for typing) and viewport
	// (for scrolling). Only forward non-character keys to viewport to
	// avoid conflicts (e.g. 'j'/'k' are viewport scroll AND text characters).
	if !m.running {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.snapCh = make(chan moda.Session, 256)
	m.doneCh = make(chan error, 1)
	m.running = true

	m.Input.Blur()

	return m, tea.Batch(
		startTurn(m.send, ctx, text, m.snapCh, m.doneCh),
		listenForSnapshot(m.snapCh, m.doneCh),
	)
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return ""
	}
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.running {
		if turn := m.session.OpenTurn(); turn != nil {
			for _, st := range turn.Stages {
				if st.State == moda.StageRunning {
					return m.styles.Muted.Render(st.Label)
				}
			}
		}
		return m.styles.Muted.Render("응답을 기다리는 중...")
	}
	return m.styles.Muted.Render("Enter to send, Ctrl+C to quit")
}

// buildBlocks maps session entries onto renderable blocks.
func buildBlocks(session moda.Session, styles Styles) []EntryBlock {
	blocks := make([]EntryBlock, 0, len(session.Entries))
	for _, e := range session.Entries {
		switch e.Role {
		case moda.RoleUser:
			blocks = append(blocks, NewUserBlock(e.Content, styles))
		case moda.RoleSystem:
			blocks = append(blocks, NewStagesBlock(e.Stages, styles))
		case moda.RoleAssistant:
			blocks = append(blocks, NewAssistantBlock(e.Content, e.Streaming, e.Followups, styles))
		case moda.RoleTool:
			blocks = append(blocks, NewToolBlock(e.ToolName, e.ToolState, e.ToolSummary, styles))
		}
	}
	return blocks
}

// startTurn runs the send function in a goroutine and signals completion.
func startTurn(send SendFunc, ctx context.Context, text string, snapCh chan<- moda.Session, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		err := send(ctx, text, func(s moda.Session) {
			select {
			case snapCh <- s:
			case <-ctx.Done():
			}
		})
		close(snapCh)
		doneCh <- err
		return nil
	}
}

// listenForSnapshot waits for the next snapshot from the channel. When
// the channel closes, it reads the error from doneCh and returns TurnDoneMsg.
func listenForSnapshot(ch <-chan moda.Session, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			err := <-doneCh
			return TurnDoneMsg{Err: err}
		}
		return SnapshotMsg{Session: s}
	}
}
