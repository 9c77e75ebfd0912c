package answerbot

import (
	"context"

	"github.com/w-h-a/answerbot/chat"
	"github.com/w-h-a/answerbot/generator"
	"github.com/w-h-a/answerbot/internal/service/answer"
	"github.com/w-h-a/answerbot/retriever"
)

type Bot struct {
	answer *answer.Service
}

// Reply answers the last turn of history. history is not modified.
func (b *Bot) Reply(ctx context.Context, history []chat.Turn, overrides chat.Overrides) (*chat.Response, error) {
	return b.answer.Reply(ctx, history, overrides)
}

func New(
	generator generator.Generator,
	retriever retriever.Retriever,
	opts ...Option,
) *Bot {
	options := NewOptions(opts...)

	answer := answer.New(
		generator,
		retriever,
		options.Embedder,
		options.CitationBaseURL,
	)

	return &Bot{
		answer: answer,
	}
}
