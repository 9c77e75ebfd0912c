package google

import (
	"context"

	"github.com/w-h-a/answerbot/generator"
	"google.golang.org/api/option"
)

type clientOptionsKey struct{}

// WithClientOptions passes extra options to the genai client, after the api key.
func WithClientOptions(opts ...option.ClientOption) generator.Option {
	return func(o *generator.Options) {
		o.Context = context.WithValue(o.Context, clientOptionsKey{}, opts)
	}
}

func ClientOptionsFrom(ctx context.Context) ([]option.ClientOption, bool) {
	opts, ok := ctx.Value(clientOptionsKey{}).([]option.ClientOption)
	return opts, ok
}
