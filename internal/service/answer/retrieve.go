package answer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/w-h-a/answerbot/chat"
	"github.com/w-h-a/answerbot/retriever"
	"go.opentelemetry.io/otel/attribute"
)

// retrieve never fails because of the retriever: its errors are logged and
// the answer is attempted without sources. Only cancellation aborts.
func (s *Service) retrieve(ctx context.Context, question string, query retriever.Query, overrides chat.Overrides) ([]retriever.Record, error) {
	ctx, span := s.tracer.Start(ctx, "answer.retrieve")
	defer span.End()

	opts := []retriever.SearchOption{
		retriever.WithTop(overrides.TopOrDefault()),
		retriever.WithSemanticCaptions(overrides.SemanticCaptions),
		retriever.WithSemanticRanker(overrides.SemanticRanker),
		retriever.WithRetrievalMode(string(overrides.RetrievalMode)),
	}

	if overrides.ExcludeCategory != nil {
		opts = append(opts, retriever.WithExcludeCategory(*overrides.ExcludeCategory))
	}

	vec, err := s.embed(ctx, question, overrides)
	if err != nil {
		return nil, fail(span, err)
	}
	if len(vec) > 0 {
		opts = append(opts, retriever.WithEmbedding(vec))
	}

	records, err := s.retriever.Search(ctx, query, opts...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fail(span, ctxErr)
		}
		span.RecordError(err)
		slog.WarnContext(ctx, "failed to retrieve supporting content", "error", err)
		records = nil
	}

	if records == nil {
		records = []retriever.Record{}
	}

	span.SetAttributes(attribute.Int("records", len(records)))

	return records, nil
}

// embed returns nil when no embedder is configured, in text mode, or when
// embedding fails for any reason other than cancellation.
func (s *Service) embed(ctx context.Context, question string, overrides chat.Overrides) ([]float32, error) {
	if s.embedder == nil || overrides.RetrievalMode == chat.RetrievalModeText {
		return nil, nil
	}

	vec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		slog.WarnContext(ctx, "failed to embed question", "error", err)
		return nil, nil
	}

	return vec, nil
}

func documentContents(records []retriever.Record) string {
	if len(records) == 0 {
		return noSourceAvailable
	}

	parts := make([]string, 0, len(records))
	for _, r := range records {
		parts = append(parts, r.Title+":"+r.Content)
	}

	return strings.Join(parts, "\r")
}
