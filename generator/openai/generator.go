package openai

import (
	"context"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"github.com/w-h-a/answerbot/generator"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type openAIGenerator struct {
	options generator.Options
	client  *openai.Client
}

func (g *openAIGenerator) Generate(ctx context.Context, chat *generator.Chat) ([]generator.Completion, error) {
	msgs := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: chat.SystemPrompt(),
		},
	}

	for _, m := range chat.Messages() {
		role := openai.ChatMessageRoleUser
		if m.Role == generator.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	req := openai.ChatCompletionRequest{
		Model:       g.options.Model,
		Messages:    msgs,
		N:           g.options.Candidates,
		MaxTokens:   g.options.MaxTokens,
		Temperature: g.options.Temperature,
	}

	rsp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}

	completions := make([]generator.Completion, 0, len(rsp.Choices))
	for _, choice := range rsp.Choices {
		completions = append(completions, generator.Completion{Content: choice.Message.Content})
	}

	return completions, nil
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	g := &openAIGenerator{
		options: options,
	}

	cfg := openai.DefaultConfig(options.ApiKey)
	if apiVersion, ok := AzureFrom(options.Context); ok {
		cfg = openai.DefaultAzureConfig(options.ApiKey, options.Location)
		if len(apiVersion) > 0 {
			cfg.APIVersion = apiVersion
		}
		// deployment names are used as given
		cfg.AzureModelMapperFunc = func(model string) string { return model }
	} else if len(options.Location) > 0 {
		cfg.BaseURL = options.Location
	}

	cfg.HTTPClient = &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	g.client = openai.NewClientWithConfig(cfg)

	return g
}
