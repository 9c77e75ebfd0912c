package postgres

import (
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/answerbot/retriever"
)

func TestBuildSearch_NothingToSearchWith(t *testing.T) {
	_, _, ok := buildSearch("documents", retriever.VectorOnly(), retriever.NewSearchOptions())
	assert.False(t, ok)

	_, _, ok = buildSearch("documents", retriever.Formulated("   "), retriever.NewSearchOptions())
	assert.False(t, ok)
}

func TestBuildSearch_Text(t *testing.T) {
	stmt, args, ok := buildSearch(
		"documents",
		retriever.Formulated("deductible"),
		retriever.NewSearchOptions(retriever.WithTop(5)),
	)
	require.True(t, ok)

	assert.Contains(t, stmt, `FROM "documents" d`)
	assert.Contains(t, stmt, "websearch_to_tsquery('english', $1)")
	assert.Contains(t, stmt, "WHERE to_tsvector('english', d.title || ' ' || d.content) @@")
	assert.NotContains(t, stmt, "<=>")
	assert.NotContains(t, stmt, "IS DISTINCT FROM")
	assert.Equal(t, []any{"deductible", 5}, args)
}

func TestBuildSearch_Vector(t *testing.T) {
	vec := []float32{0.1, 0.2}

	stmt, args, ok := buildSearch(
		"documents",
		retriever.VectorOnly(),
		retriever.NewSearchOptions(
			retriever.WithRetrievalMode("Vector"),
			retriever.WithEmbedding(vec),
			retriever.WithExcludeCategory("hr"),
		),
	)
	require.True(t, ok)

	assert.Contains(t, stmt, "ORDER BY d.embedding <=> $1")
	assert.Contains(t, stmt, "d.category IS DISTINCT FROM $2")
	assert.NotContains(t, stmt, "websearch_to_tsquery")
	assert.Equal(t, []any{pgvector.NewVector(vec), "hr", 3}, args)
}

func TestBuildSearch_HybridWeighted(t *testing.T) {
	stmt, args, ok := buildSearch(
		"documents",
		retriever.Formulated("dental"),
		retriever.NewSearchOptions(retriever.WithEmbedding([]float32{1})),
	)
	require.True(t, ok)

	assert.Contains(t, stmt, "ts_rank_cd(")
	assert.Contains(t, stmt, "COALESCE((1 - (d.embedding <=> $2)), 0)")
	assert.NotContains(t, stmt, "text_hits")
	assert.Len(t, args, 3)
}

func TestBuildSearch_HybridRankFusion(t *testing.T) {
	stmt, args, ok := buildSearch(
		"documents",
		retriever.Formulated("dental"),
		retriever.NewSearchOptions(
			retriever.WithEmbedding([]float32{1}),
			retriever.WithSemanticRanker(true),
			retriever.WithTop(2),
		),
	)
	require.True(t, ok)

	assert.Contains(t, stmt, "WITH text_hits AS")
	assert.Contains(t, stmt, "vector_hits AS")
	assert.Contains(t, stmt, "1.0 / (60 + t.rnk)")
	assert.Equal(t, 2, args[2])
	assert.Equal(t, 8, args[3])
}

func TestBuildSearch_CaptionsUseHeadline(t *testing.T) {
	stmt, _, ok := buildSearch(
		"documents",
		retriever.Formulated("dental"),
		retriever.NewSearchOptions(retriever.WithSemanticCaptions(true)),
	)
	require.True(t, ok)

	assert.Contains(t, stmt, "ts_headline('english', d.content, websearch_to_tsquery('english', $1), 'MaxFragments=2, MaxWords=35, MinWords=15')")
}

func TestBuildSearch_QuotesTable(t *testing.T) {
	stmt, _, ok := buildSearch(`docs"; DROP TABLE x; --`, retriever.Formulated("q"), retriever.NewSearchOptions())
	require.True(t, ok)

	assert.Contains(t, stmt, `FROM "docs""; DROP TABLE x; --" d`)
}
