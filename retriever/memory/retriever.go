package memory

import (
	"context"
	"sort"

	"github.com/w-h-a/answerbot/retriever"
)

type candidate struct {
	doc   Document
	score float64
}

type memoryRetriever struct {
	options   retriever.Options
	documents []Document
	relevance float64
}

func (r *memoryRetriever) Search(ctx context.Context, query retriever.Query, opts ...retriever.SearchOption) ([]retriever.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	options := retriever.NewSearchOptions(opts...)

	text, useText := options.UseText(query)
	terms := Terms(text)
	useText = useText && len(terms) > 0
	useVector := options.UseVector()

	if !useText && !useVector {
		return []retriever.Record{}, nil
	}

	candidates := make([]candidate, 0, len(r.documents))

	for _, doc := range r.documents {
		if len(options.ExcludeCategory) > 0 && doc.Category == options.ExcludeCategory {
			continue
		}

		score := 0.0
		if useText {
			score += TermScore(terms, doc.Title+" "+doc.Content)
		}
		if useVector {
			score += CosineSimilarity(options.Embedding, doc.Embedding)
		}

		if score <= 0 {
			continue
		}

		candidates = append(candidates, candidate{doc: doc, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if options.SemanticRanker {
		if len(candidates) > options.Top*4 {
			candidates = candidates[:options.Top*4]
		}
		candidates = selectDiverse(candidates, options.Top, r.relevance)
	} else if len(candidates) > options.Top {
		candidates = candidates[:options.Top]
	}

	records := make([]retriever.Record, 0, len(candidates))
	for _, c := range candidates {
		content := c.doc.Content
		if options.SemanticCaptions {
			content = Caption(terms, content)
		}
		records = append(records, retriever.Record{
			Title:    c.doc.Title,
			Content:  content,
			Category: c.doc.Category,
			Score:    float32(c.score),
		})
	}

	return records, nil
}

func NewRetriever(opts ...retriever.Option) retriever.Retriever {
	options := retriever.NewOptions(opts...)

	r := &memoryRetriever{
		options:   options,
		relevance: 0.7,
	}

	if docs, ok := DocumentsFrom(options.Context); ok {
		r.documents = append([]Document(nil), docs...)
	}

	if relevance, ok := RelevanceFrom(options.Context); ok {
		r.relevance = relevance
	}

	return r
}
