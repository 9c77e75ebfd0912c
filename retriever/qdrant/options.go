package qdrant

import (
	"context"

	"github.com/w-h-a/answerbot/embedder"
	"github.com/w-h-a/answerbot/retriever"
)

type embedderKey struct{}

// WithEmbedder lets the retriever embed a formulated query itself when the
// caller did not supply a vector. Qdrant has no text search.
func WithEmbedder(e embedder.Embedder) retriever.Option {
	return func(o *retriever.Options) {
		o.Context = context.WithValue(o.Context, embedderKey{}, e)
	}
}

func EmbedderFrom(ctx context.Context) (embedder.Embedder, bool) {
	e, ok := ctx.Value(embedderKey{}).(embedder.Embedder)
	return e, ok
}
