package retriever

// Record is one retrieved document fragment. Only Title and Content leave
// the process; Category and Score are for adapters and diagnostics.
type Record struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"-"`
	Score    float32 `json:"-"`
}
