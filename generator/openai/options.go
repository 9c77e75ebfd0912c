package openai

import (
	"context"

	"github.com/w-h-a/answerbot/generator"
)

type azureKey struct{}

// WithAzure targets an Azure OpenAI resource. generator.WithLocation is the
// resource endpoint and generator.WithModel is the deployment name.
func WithAzure(apiVersion string) generator.Option {
	return func(o *generator.Options) {
		o.Context = context.WithValue(o.Context, azureKey{}, apiVersion)
	}
}

func AzureFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(azureKey{}).(string)
	return v, ok
}
