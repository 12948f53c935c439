package moda

import "github.com/rivo/uniseg"

// truncateSummary bounds s to max grapheme clusters, appending an
// ellipsis when anything was cut. Grapheme-aware so Hangul and emoji
// are never split mid-cluster.
func truncateSummary(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if uniseg.GraphemeClusterCount(s) <= max {
		return s
	}
	g := uniseg.NewGraphemes(s)
	end := 0
	for i := 0; i < max && g.Next(); i++ {
		_, end = g.Positions()
	}
	return s[:end] + "..."
}
