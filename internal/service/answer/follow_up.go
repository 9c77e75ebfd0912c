package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/w-h-a/answerbot/generator"
)

func (s *Service) followUp(ctx context.Context, answer string) ([]string, error) {
	c := generator.NewChat(followUpSystemPrompt)
	c.AddUserMessage(fmt.Sprintf(followUpPromptTemplate, answer))

	content, err := s.complete(ctx, StageFollowUp, c)
	if err != nil {
		return nil, err
	}

	return parseFollowUps(content)
}

// appendFollowUps keeps every question the model returned, even when it
// returned more or fewer than the three it was asked for.
func appendFollowUps(answer string, questions []string) string {
	var b strings.Builder
	b.WriteString(answer)
	for _, q := range questions {
		b.WriteString(" <<")
		b.WriteString(q)
		b.WriteString(">> ")
	}
	return b.String()
}
