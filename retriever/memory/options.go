package memory

import (
	"context"

	"github.com/w-h-a/answerbot/retriever"
)

type documentsKey struct{}

func WithDocuments(docs ...Document) retriever.Option {
	return func(o *retriever.Options) {
		o.Context = context.WithValue(o.Context, documentsKey{}, docs)
	}
}

func DocumentsFrom(ctx context.Context) ([]Document, bool) {
	docs, ok := ctx.Value(documentsKey{}).([]Document)
	return docs, ok
}

type relevanceKey struct{}

// WithRelevance sets the MMR trade-off used by the semantic ranker: 1 is
// pure relevance, 0 is pure diversity.
func WithRelevance(relevance float64) retriever.Option {
	return func(o *retriever.Options) {
		o.Context = context.WithValue(o.Context, relevanceKey{}, relevance)
	}
}

func RelevanceFrom(ctx context.Context) (float64, bool) {
	r, ok := ctx.Value(relevanceKey{}).(float64)
	return r, ok
}
