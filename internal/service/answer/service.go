package answer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/w-h-a/answerbot/chat"
	"github.com/w-h-a/answerbot/embedder"
	"github.com/w-h-a/answerbot/generator"
	"github.com/w-h-a/answerbot/retriever"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/w-h-a/answerbot/internal/service/answer"

// Service answers the last question of a conversation from retrieved
// documents. It holds no per-request state and is safe for concurrent use
// when its collaborators are.
type Service struct {
	generator       generator.Generator
	retriever       retriever.Retriever
	embedder        embedder.Embedder
	citationBaseURL string
	tracer          trace.Tracer
}

func (s *Service) Reply(ctx context.Context, history []chat.Turn, overrides chat.Overrides) (*chat.Response, error) {
	question, ok := chat.Question(history)
	if !ok || len(strings.TrimSpace(question)) == 0 {
		return nil, ErrInvalidConversation
	}

	ctx, span := s.tracer.Start(ctx, "answer.reply", trace.WithAttributes(
		attribute.String("prompt.version", PromptVersion),
		attribute.Int("history.turns", len(history)),
		attribute.String("retrieval.mode", string(overrides.RetrievalMode)),
	))
	defer span.End()

	// 1. Query
	query := retriever.VectorOnly()
	if !overrides.VectorOnly() {
		text, err := s.formulateQuery(ctx, question)
		if err != nil {
			return nil, fail(span, err)
		}
		query = retriever.Formulated(text)
	}

	// 2. Supporting content
	records, err := s.retrieve(ctx, question, query, overrides)
	if err != nil {
		return nil, fail(span, err)
	}

	// 3. Answer
	answer, thoughts, err := s.synthesize(ctx, history, documentContents(records))
	if err != nil {
		return nil, fail(span, err)
	}

	// 4. Follow-up questions
	if overrides.SuggestFollowUpQuestions {
		questions, err := s.followUp(ctx, answer)
		if err != nil {
			return nil, fail(span, err)
		}
		answer = appendFollowUps(answer, questions)
	}

	slog.DebugContext(ctx, "answered question",
		"records", len(records),
		"follow_ups", overrides.SuggestFollowUpQuestions,
		"prompt_version", PromptVersion,
	)

	return &chat.Response{
		DataPoints:      records,
		Answer:          answer,
		Thoughts:        thoughts,
		CitationBaseURL: s.citationBaseURL,
	}, nil
}

func (s *Service) complete(ctx context.Context, stage Stage, c *generator.Chat) (string, error) {
	ctx, span := s.tracer.Start(ctx, stage.spanName(), trace.WithAttributes(
		attribute.Int("chat.messages", len(c.Messages())),
	))
	defer span.End()

	completions, err := s.generator.Generate(ctx, c)
	if err != nil {
		return "", fail(span, &stageError{stage: stage, err: err})
	}

	span.SetAttributes(attribute.Int("completions", len(completions)))

	content, err := single(stage, completions)
	if err != nil {
		return "", fail(span, err)
	}

	return content, nil
}

type stageError struct {
	stage Stage
	err   error
}

func (e *stageError) Error() string {
	return string(e.stage) + ": " + e.err.Error()
}

func (e *stageError) Unwrap() error {
	return e.err
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func New(
	generator generator.Generator,
	retriever retriever.Retriever,
	embedder embedder.Embedder,
	citationBaseURL string,
) *Service {
	if generator == nil {
		panic("generator is required")
	}

	if retriever == nil {
		panic("retriever is required")
	}

	return &Service{
		generator:       generator,
		retriever:       retriever,
		embedder:        embedder,
		citationBaseURL: citationBaseURL,
		tracer:          otel.Tracer(tracerName),
	}
}
