package bubbletea_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/modachat/moda"
	bt "github.com/modachat/moda/bubbletea"
)

func TestUserBlock_View(t *testing.T) {
	t.Parallel()

	t.Run("renders text with prompt prefix", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(moda.DefaultTheme())
		block := bt.NewUserBlock("청바지 추천해줘", styles)
		view := block.View(80)
		assert.Contains(t, view, "> ")
		assert.Contains(t, view, "청바지 추천해줘")
	})

	t.Run("wraps long text to width", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(moda.DefaultTheme())
		longText := "short words that keep going and going beyond the viewport width easily"
		block := bt.NewUserBlock(longText, styles)
		view := block.View(30)
		assert.Contains(t, view, "easily")
		assert.Greater(t, len(strings.Split(view, "\n")), 1)
	})
}
