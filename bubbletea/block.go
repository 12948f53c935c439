package bubbletea

// EntryBlock is a renderable element of the conversation. View takes a
// width parameter so the root model controls layout and blocks are
// testable in isolation.
type EntryBlock interface {
	View(width int) string
}
