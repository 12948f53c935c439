package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var _ EntryBlock = (*AssistantBlock)(nil)

// AssistantBlock renders an assistant reply as plain text, with a
// streaming cursor while tokens are still arriving and the suggested
// followup questions once the turn is finalized.
type AssistantBlock struct {
	text      string
	streaming bool
	followups []string
	styles    Styles
}

// NewAssistantBlock creates an AssistantBlock.
func NewAssistantBlock(text string, streaming bool, followups []string, styles Styles) *AssistantBlock {
	return &AssistantBlock{text: text, streaming: streaming, followups: followups, styles: styles}
}

func (b *AssistantBlock) View(width int) string {
	var sb strings.Builder
	sb.WriteString(b.text)
	if b.streaming {
		sb.WriteString(b.styles.Muted.Render("▌"))
	}
	if !b.streaming && len(b.followups) > 0 {
		sb.WriteString("\n")
		for _, q := range b.followups {
			sb.WriteString("\n")
			sb.WriteString(b.styles.Accent.Render("? "))
			sb.WriteString(b.styles.Muted.Render(q))
		}
	}
	return lipgloss.NewStyle().Width(width).Render(sb.String())
}
