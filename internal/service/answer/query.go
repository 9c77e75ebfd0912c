package answer

import (
	"context"
	"strings"

	"github.com/w-h-a/answerbot/generator"
)

func (s *Service) formulateQuery(ctx context.Context, question string) (string, error) {
	c := generator.NewChat(querySystemPrompt)
	c.AddUserMessage(question)

	query, err := s.complete(ctx, StageFormulate, c)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(query), nil
}
