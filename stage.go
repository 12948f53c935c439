package moda

// StageState indicates the progress of a single pipeline stage.
type StageState string

const (
	StagePending   StageState = "pending"
	StageRunning   StageState = "running"
	StageCompleted StageState = "completed"
)

// StageSpec declares one stage of the backend pipeline.
type StageSpec struct {
	ID          string
	Label       string
	LongRunning bool
}

// StageStatus is the tracked progress of one stage within a Turn.
type StageStatus struct {
	ID          string
	Label       string
	State       StageState
	LongRunning bool
}

// StageTable declares the backend pipeline shape for a turn: the canonical
// stage order plus the signal vocabulary that maps onto it. The backend
// emits sub-step names and completion tokens that are not themselves stage
// ids; Aliases and Completions translate them. The table is configuration:
// the default covers the signals the backend is known to emit, not every
// signal it could emit.
type StageTable struct {
	// Stages is the canonical ordered stage list (the full search path).
	Stages []StageSpec

	// Aliases maps sub-step signals onto the parent stage id they advance.
	Aliases map[string]string

	// Completions maps completion-only tokens onto the stage id they
	// complete. Completion tokens are disjoint from progress signals.
	Completions map[string]string

	// ShortPathSignal pins the turn to the general-query path when seen.
	ShortPathSignal string

	// FullPathSignal pins the turn to the search path when seen. It is the
	// first node the backend router dispatches to on that path.
	FullPathSignal string
}

// DefaultStageTable returns the stage table matching the shopping agent
// backend's unified workflow.
func DefaultStageTable() StageTable {
	return StageTable{
		Stages: []StageSpec{
			{ID: "start", Label: "요청을 접수하고 있습니다..."},
			{ID: "analyze_query", Label: "AI가 질문을 분석하고 있습니다..."},
			{ID: "optimize_search_query", Label: "AI가 검색어를 최적화하고 있습니다..."},
			{ID: "search_products", Label: "상품을 검색하고 있습니다...", LongRunning: true},
			{ID: "filter_product_links", Label: "상품 링크를 선별하고 있습니다..."},
			{ID: "extract_product_data", Label: "상품 정보를 수집하고 있습니다...", LongRunning: true},
			{ID: "validate_and_select", Label: "상품 정보를 검증하고 있습니다..."},
			{ID: "generate_final_response", Label: "AI가 최종 답변을 생성하고 있습니다..."},
		},
		Aliases: map[string]string{
			"extract_search_keywords":    "optimize_search_query",
			"extracting_product_details": "extract_product_data",
		},
		Completions: map[string]string{
			"search_completed":     "search_products",
			"extraction_completed": "extract_product_data",
			"validation_completed": "validate_and_select",
		},
		ShortPathSignal: "handle_general_query",
		FullPathSignal:  "extract_search_keywords",
	}
}

// statuses materializes the table's stage list as fresh pending statuses.
func (t StageTable) statuses() []StageStatus {
	out := make([]StageStatus, len(t.Stages))
	for i, s := range t.Stages {
		out[i] = StageStatus{ID: s.ID, Label: s.Label, State: StagePending, LongRunning: s.LongRunning}
	}
	return out
}

// rank returns the canonical index of a stage id, resolving aliases.
// The second return is false for unrecognized signals.
func (t StageTable) rank(signal string) (int, bool) {
	id := signal
	if parent, ok := t.Aliases[signal]; ok {
		id = parent
	}
	for i, s := range t.Stages {
		if s.ID == id {
			return i, true
		}
	}
	return 0, false
}
