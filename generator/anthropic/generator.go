package anthropic

import (
	"context"
	"net/http"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/w-h-a/answerbot/generator"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type anthropicGenerator struct {
	options generator.Options
	client  *anthropic.Client
}

// Generate returns a single completion. The Messages API has no candidate
// count, so generator.WithCandidates is ignored.
func (g *anthropicGenerator) Generate(ctx context.Context, chat *generator.Chat) ([]generator.Completion, error) {
	msgs := make([]anthropic.MessageParam, 0, len(chat.Messages()))
	for _, m := range chat.Messages() {
		switch m.Role {
		case generator.RoleAssistant:
			msgs = append(msgs, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	req := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.options.Model),
		MaxTokens: int64(g.options.MaxTokens),
		Messages:  msgs,
	}

	if len(chat.SystemPrompt()) > 0 {
		req.System = []anthropic.TextBlockParam{
			{Text: chat.SystemPrompt()},
		}
	}

	if g.options.Temperature > 0 {
		req.Temperature = anthropic.Float(float64(g.options.Temperature))
	}

	rsp, err := g.client.Messages.New(ctx, req)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	for _, content := range rsp.Content {
		if text, ok := content.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}

	if b.Len() == 0 {
		return []generator.Completion{}, nil
	}

	return []generator.Completion{{Content: b.String()}}, nil
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	g := &anthropicGenerator{
		options: options,
	}

	clientOpts := []anthropicopt.RequestOption{
		anthropicopt.WithAPIKey(options.ApiKey),
		anthropicopt.WithHTTPClient(&http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}),
		anthropicopt.WithMaxRetries(0),
	}

	if len(options.Location) > 0 {
		clientOpts = append(clientOpts, anthropicopt.WithBaseURL(options.Location))
	}

	client := anthropic.NewClient(clientOpts...)

	g.client = &client

	return g
}
