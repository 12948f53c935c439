package bubbletea

import (
	"github.com/mattn/go-runewidth"

	"github.com/modachat/moda"
)

var _ EntryBlock = (*ToolBlock)(nil)

// ToolBlock renders a backend tool invocation: a header while it runs,
// plus a one-line output summary once it completes.
type ToolBlock struct {
	name    string
	state   moda.StageState
	summary string
	styles  Styles
}

// NewToolBlock creates a ToolBlock.
func NewToolBlock(name string, state moda.StageState, summary string, styles Styles) *ToolBlock {
	return &ToolBlock{name: name, state: state, summary: summary, styles: styles}
}

func (b *ToolBlock) View(width int) string {
	header := b.styles.ToolCall.Render("⚙ " + b.name)
	if b.state == moda.StageRunning {
		return header + b.styles.Muted.Render(" ...")
	}
	out := header + b.styles.Success.Render(" ✓")
	if b.summary != "" {
		out += "\n" + b.styles.Muted.Render(runewidth.Truncate(b.summary, max(width-2, 0), "…"))
	}
	return out
}
