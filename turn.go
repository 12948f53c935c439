package moda

import "time"

// WorkflowVariant identifies which backend execution path produced a
// turn's events. It is unknown until the router's first signal arrives
// and sticky afterwards.
type WorkflowVariant string

const (
	VariantUnknown   WorkflowVariant = "unknown"
	VariantShortPath WorkflowVariant = "short_path"
	VariantFullPath  WorkflowVariant = "full_path"
)

// SearchMetadata describes the search the backend ran for a turn.
type SearchMetadata struct {
	SearchQuery      string         `json:"search_query"`
	SearchParameters map[string]any `json:"search_parameters"`
	ResultsCount     int            `json:"results_count"`
	SearchURL        string         `json:"search_url"`
}

// Turn is one user submission and its full backend response cycle.
// A turn is open from creation until a complete/error/stream-end is
// observed; at most one turn is open at a time.
type Turn struct {
	RequestID string
	UserText  string
	Stages    []StageStatus
	Variant   WorkflowVariant
	Search    *SearchMetadata
	CreatedAt time.Time
	Open      bool
}
