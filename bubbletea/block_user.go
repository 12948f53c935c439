package bubbletea

import "github.com/charmbracelet/lipgloss"

var _ EntryBlock = (*UserBlock)(nil)

// UserBlock renders a user message with a "> " prefix.
type UserBlock struct {
	text   string
	styles Styles
}

// NewUserBlock creates a UserBlock.
func NewUserBlock(text string, styles Styles) *UserBlock {
	return &UserBlock{text: text, styles: styles}
}

func (b *UserBlock) View(width int) string {
	content := b.styles.UserMsg.Render("> ") + b.text
	return lipgloss.NewStyle().Width(width).Render(content)
}
