package postgres

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/w-h-a/answerbot/retriever"
)

// rrfK is the reciprocal rank fusion constant.
const rrfK = 60

const headlineOptions = "MaxFragments=2, MaxWords=35, MinWords=15"

type builder struct {
	args []any
}

func (b *builder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// buildSearch renders the SQL for one search. The table is expected to have
// title, content, category and embedding (vector) columns. It returns false
// when there is nothing to search with.
func buildSearch(table string, query retriever.Query, options retriever.SearchOptions) (string, []any, bool) {
	text, useText := options.UseText(query)
	useText = useText && len(strings.TrimSpace(text)) > 0
	useVector := options.UseVector()

	if !useText && !useVector {
		return "", nil, false
	}

	b := &builder{}
	tbl := pq.QuoteIdentifier(table)

	var tsq, vec string
	if useText {
		tsq = fmt.Sprintf("websearch_to_tsquery('english', %s)", b.arg(text))
	}
	if useVector {
		vec = b.arg(pgvector.NewVector(options.Embedding))
	}

	filter := "TRUE"
	if len(options.ExcludeCategory) > 0 {
		filter = fmt.Sprintf("d.category IS DISTINCT FROM %s", b.arg(options.ExcludeCategory))
	}

	content := "d.content"
	if options.SemanticCaptions && useText {
		content = fmt.Sprintf("ts_headline('english', d.content, %s, '%s')", tsq, headlineOptions)
	}

	document := "to_tsvector('english', d.title || ' ' || d.content)"
	textRank := fmt.Sprintf("ts_rank_cd(%s, %s, 32)", document, tsq)
	similarity := fmt.Sprintf("(1 - (d.embedding <=> %s))", vec)
	limit := b.arg(options.Top)

	var stmt string

	switch {
	case useText && useVector && options.SemanticRanker:
		pool := b.arg(options.Top * 4)
		stmt = fmt.Sprintf(`
		WITH text_hits AS (
			SELECT d.id, row_number() OVER (ORDER BY %[1]s DESC) AS rnk
			FROM %[2]s d
			WHERE %[3]s @@ %[4]s AND %[5]s
			ORDER BY %[1]s DESC
			LIMIT %[6]s
		), vector_hits AS (
			SELECT d.id, row_number() OVER (ORDER BY d.embedding <=> %[7]s) AS rnk
			FROM %[2]s d
			WHERE d.embedding IS NOT NULL AND %[5]s
			ORDER BY d.embedding <=> %[7]s
			LIMIT %[6]s
		)
		SELECT d.title, %[8]s, d.category,
			COALESCE(1.0 / (%[9]d + t.rnk), 0) + COALESCE(1.0 / (%[9]d + v.rnk), 0) AS score
		FROM %[2]s d
		LEFT JOIN text_hits t ON t.id = d.id
		LEFT JOIN vector_hits v ON v.id = d.id
		WHERE t.id IS NOT NULL OR v.id IS NOT NULL
		ORDER BY score DESC
		LIMIT %[10]s
	`, textRank, tbl, document, tsq, filter, pool, vec, content, rrfK, limit)

	case useText && useVector:
		stmt = fmt.Sprintf(`
		SELECT d.title, %s, d.category, %s + COALESCE(%s, 0) AS score
		FROM %s d
		WHERE (%s @@ %s OR d.embedding IS NOT NULL) AND %s
		ORDER BY score DESC
		LIMIT %s
	`, content, textRank, similarity, tbl, document, tsq, filter, limit)

	case useText:
		stmt = fmt.Sprintf(`
		SELECT d.title, %s, d.category, %s AS score
		FROM %s d
		WHERE %s @@ %s AND %s
		ORDER BY score DESC
		LIMIT %s
	`, content, textRank, tbl, document, tsq, filter, limit)

	default:
		stmt = fmt.Sprintf(`
		SELECT d.title, %s, d.category, %s AS score
		FROM %s d
		WHERE d.embedding IS NOT NULL AND %s
		ORDER BY d.embedding <=> %s
		LIMIT %s
	`, content, similarity, tbl, filter, vec, limit)
	}

	return stmt, b.args, true
}
