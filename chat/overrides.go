package chat

type RetrievalMode string

const (
	RetrievalModeText   RetrievalMode = "Text"
	RetrievalModeVector RetrievalMode = "Vector"
	RetrievalModeHybrid RetrievalMode = "Hybrid"
)

const defaultTop = 3

// Overrides are the per-request knobs a caller may set.
type Overrides struct {
	Top                      *int          `json:"top,omitempty"`
	SemanticCaptions         bool          `json:"semanticCaptions,omitempty"`
	SemanticRanker           bool          `json:"semanticRanker,omitempty"`
	ExcludeCategory          *string       `json:"excludeCategory,omitempty"`
	RetrievalMode            RetrievalMode `json:"retrievalMode,omitempty"`
	SuggestFollowUpQuestions bool          `json:"suggestFollowUpQuestions,omitempty"`
}

func (o Overrides) TopOrDefault() int {
	if o.Top == nil || *o.Top <= 0 {
		return defaultTop
	}
	return *o.Top
}

// VectorOnly reports whether query formulation is skipped.
func (o Overrides) VectorOnly() bool {
	return o.RetrievalMode == RetrievalModeVector
}
