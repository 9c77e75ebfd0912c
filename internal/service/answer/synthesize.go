package answer

import (
	"context"
	"fmt"

	"github.com/w-h-a/answerbot/chat"
	"github.com/w-h-a/answerbot/generator"
)

func (s *Service) synthesize(ctx context.Context, history []chat.Turn, documents string) (string, string, error) {
	content, err := s.complete(ctx, StageSynthesize, buildAnswerChat(history, documents))
	if err != nil {
		return "", "", err
	}

	return parseAnswer(content)
}

// buildAnswerChat replays history as alternating user and assistant
// messages, then asks for a JSON answer grounded in documents.
func buildAnswerChat(history []chat.Turn, documents string) *generator.Chat {
	c := generator.NewChat(answerSystemPrompt)

	for _, turn := range history {
		c.AddUserMessage(turn.User)
		if turn.Bot != nil {
			c.AddAssistantMessage(*turn.Bot)
		}
	}

	c.AddUserMessage(fmt.Sprintf(answerPromptTemplate, documents))

	return c
}
