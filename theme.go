package moda

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	UserMsg   int // User message accent
	Stage     int // Running pipeline stage
	StageDone int // Completed pipeline stage
	ToolCall  int // Tool invocation header
	Error     int // Error messages
	Success   int // Success indicators
	Muted     int // Status bar, placeholders, pending stages
	Accent    int // Followup suggestions, links
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg:   4,
		Stage:     3,
		StageDone: 2,
		ToolCall:  3,
		Error:     1,
		Success:   2,
		Muted:     8,
		Accent:    5,
	}
}
