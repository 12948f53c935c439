package bubbletea

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/modachat/moda"
)

var _ EntryBlock = (*StagesBlock)(nil)

// StagesBlock renders the pipeline progress checklist shown while the
// backend works on a turn. Completed stages get a check mark, the
// running stage a spinner-style arrow, pending stages stay dimmed.
type StagesBlock struct {
	stages []moda.StageStatus
	styles Styles
}

// NewStagesBlock creates a StagesBlock.
func NewStagesBlock(stages []moda.StageStatus, styles Styles) *StagesBlock {
	return &StagesBlock{stages: stages, styles: styles}
}

func (b *StagesBlock) View(width int) string {
	var sb strings.Builder
	for i, st := range b.stages {
		if i > 0 {
			sb.WriteString("\n")
		}
		label := st.Label
		if st.LongRunning && st.State == moda.StageRunning {
			label += " (시간이 걸릴 수 있어요)"
		}
		// Korean labels are double-width; truncate by display width.
		label = runewidth.Truncate(label, max(width-2, 0), "…")

		switch st.State {
		case moda.StageCompleted:
			sb.WriteString(b.styles.StageDone.Render("✓ " + label))
		case moda.StageRunning:
			sb.WriteString(b.styles.Stage.Render("▸ " + label))
		default:
			sb.WriteString(b.styles.Muted.Render("· " + label))
		}
	}
	return sb.String()
}
