package retriever

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSearchOptions_Defaults(t *testing.T) {
	o := NewSearchOptions()
	assert.Equal(t, 3, o.Top)
	assert.False(t, o.SemanticCaptions)
	assert.False(t, o.SemanticRanker)
	assert.Empty(t, o.ExcludeCategory)
	assert.False(t, o.UseVector())
}

func TestNewSearchOptions_IgnoresNonPositiveTop(t *testing.T) {
	assert.Equal(t, 3, NewSearchOptions(WithTop(0)).Top)
	assert.Equal(t, 7, NewSearchOptions(WithTop(7)).Top)
}

func TestSearchOptions_Modes(t *testing.T) {
	vec := []float32{0.1, 0.2}

	tests := []struct {
		name      string
		mode      string
		query     Query
		wantText  bool
		wantVec   bool
		embedding []float32
	}{
		{name: "hybrid with both", mode: "Hybrid", query: Formulated("q"), wantText: true, wantVec: true, embedding: vec},
		{name: "text ignores vector", mode: "Text", query: Formulated("q"), wantText: true, wantVec: false, embedding: vec},
		{name: "vector ignores text", mode: "Vector", query: Formulated("q"), wantText: false, wantVec: true, embedding: vec},
		{name: "vector only query", mode: "", query: VectorOnly(), wantText: false, wantVec: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewSearchOptions(WithRetrievalMode(tt.mode), WithEmbedding(tt.embedding))
			_, gotText := o.UseText(tt.query)
			assert.Equal(t, tt.wantText, gotText)
			assert.Equal(t, tt.wantVec, o.UseVector())
		})
	}
}

func TestText(t *testing.T) {
	text, ok := Text(Formulated("deductible AND plan"))
	assert.True(t, ok)
	assert.Equal(t, "deductible AND plan", text)

	_, ok = Text(VectorOnly())
	assert.False(t, ok)
}
