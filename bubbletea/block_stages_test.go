package bubbletea_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/modachat/moda"
	bt "github.com/modachat/moda/bubbletea"
)

func TestStagesBlock_View(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(moda.DefaultTheme())

	t.Run("marks each state distinctly", func(t *testing.T) {
		t.Parallel()
		block := bt.NewStagesBlock([]moda.StageStatus{
			{ID: "start", Label: "시작하고 있어요", State: moda.StageCompleted},
			{ID: "analyze_query", Label: "질문을 분석하고 있어요", State: moda.StageRunning},
			{ID: "search_products", Label: "상품을 검색하고 있어요", State: moda.StagePending},
		}, styles)
		view := block.View(80)
		assert.Contains(t, view, "✓ 시작하고 있어요")
		assert.Contains(t, view, "▸ 질문을 분석하고 있어요")
		assert.Contains(t, view, "· 상품을 검색하고 있어요")
	})

	t.Run("long-running stage gets a patience hint while running", func(t *testing.T) {
		t.Parallel()
		block := bt.NewStagesBlock([]moda.StageStatus{
			{ID: "search_products", Label: "상품을 검색하고 있어요", State: moda.StageRunning, LongRunning: true},
		}, styles)
		assert.Contains(t, block.View(120), "시간이 걸릴 수 있어요")
	})

	t.Run("no hint once the long-running stage completes", func(t *testing.T) {
		t.Parallel()
		block := bt.NewStagesBlock([]moda.StageStatus{
			{ID: "search_products", Label: "상품을 검색하고 있어요", State: moda.StageCompleted, LongRunning: true},
		}, styles)
		assert.NotContains(t, block.View(120), "시간이 걸릴 수 있어요")
	})

	t.Run("labels truncate to the width", func(t *testing.T) {
		t.Parallel()
		block := bt.NewStagesBlock([]moda.StageStatus{
			{ID: "analyze_query", Label: "질문을 분석하고 있어요", State: moda.StageRunning},
		}, styles)
		view := block.View(10)
		assert.Contains(t, view, "…")
	})
}
