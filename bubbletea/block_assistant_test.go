package bubbletea_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/modachat/moda"
	bt "github.com/modachat/moda/bubbletea"
)

func TestAssistantBlock_View(t *testing.T) {
	t.Parallel()

	t.Run("streaming shows a cursor", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(moda.DefaultTheme())
		block := bt.NewAssistantBlock("추천", true, nil, styles)
		view := block.View(80)
		assert.Contains(t, view, "추천")
		assert.Contains(t, view, "▌")
	})

	t.Run("finalized drops the cursor", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(moda.DefaultTheme())
		block := bt.NewAssistantBlock("추천합니다", false, nil, styles)
		view := block.View(80)
		assert.Contains(t, view, "추천합니다")
		assert.NotContains(t, view, "▌")
	})

	t.Run("finalized shows followup questions", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(moda.DefaultTheme())
		block := bt.NewAssistantBlock("추천합니다", false, []string{"다른 색상은요?", "사이즈 추천은요?"}, styles)
		view := block.View(80)
		assert.Contains(t, view, "? ")
		assert.Contains(t, view, "다른 색상은요?")
		assert.Contains(t, view, "사이즈 추천은요?")
	})

	t.Run("followups stay hidden while streaming", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(moda.DefaultTheme())
		block := bt.NewAssistantBlock("추천", true, []string{"다른 색상은요?"}, styles)
		assert.NotContains(t, block.View(80), "다른 색상은요?")
	})
}
