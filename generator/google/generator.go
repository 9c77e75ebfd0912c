package google

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/w-h-a/answerbot/generator"
	genaiopt "google.golang.org/api/option"
)

type googleGenerator struct {
	options generator.Options
	client  *genai.Client
}

// Generate replays the chat through a genai chat session. Chat sessions
// always request a single candidate, so generator.WithCandidates is ignored.
func (g *googleGenerator) Generate(ctx context.Context, chat *generator.Chat) ([]generator.Completion, error) {
	msgs := chat.Messages()
	if len(msgs) == 0 || msgs[len(msgs)-1].Role != generator.RoleUser {
		return nil, errors.New("google chat must end with a user message")
	}

	model := g.client.GenerativeModel(g.options.Model)
	configure(model, g.options, chat.SystemPrompt())

	session := model.StartChat()
	session.History = toHistory(msgs[:len(msgs)-1])

	rsp, err := session.SendMessage(ctx, genai.Text(msgs[len(msgs)-1].Content))
	if err != nil {
		return nil, err
	}

	if rsp == nil {
		return []generator.Completion{}, nil
	}

	completions := make([]generator.Completion, 0, len(rsp.Candidates))
	for _, cand := range rsp.Candidates {
		if cand.Content == nil {
			continue
		}
		var b strings.Builder
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		completions = append(completions, generator.Completion{Content: b.String()})
	}

	return completions, nil
}

func configure(model *genai.GenerativeModel, options generator.Options, systemPrompt string) {
	model.SetMaxOutputTokens(int32(options.MaxTokens))
	if options.Temperature > 0 {
		model.SetTemperature(options.Temperature)
	}
	if len(systemPrompt) > 0 {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}
}

func toHistory(msgs []generator.Message) []*genai.Content {
	history := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := "user"
		if m.Role == generator.RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return history
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	g := &googleGenerator{
		options: options,
	}

	clientOpts := []genaiopt.ClientOption{
		genaiopt.WithAPIKey(options.ApiKey),
	}

	if extra, ok := ClientOptionsFrom(options.Context); ok {
		clientOpts = append(clientOpts, extra...)
	}

	client, err := genai.NewClient(options.Context, clientOpts...)
	if err != nil {
		detail := "failed to initialize google generator"
		slog.ErrorContext(options.Context, detail, "error", err)
		panic(detail)
	}

	g.client = client

	return g
}
