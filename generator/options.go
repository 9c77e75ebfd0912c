package generator

import "context"

type Option func(*Options)

type Options struct {
	ApiKey      string
	Model       string
	Location    string
	MaxTokens   int
	Temperature float32
	Candidates  int
	Context     context.Context
}

func WithApiKey(apiKey string) Option {
	return func(o *Options) {
		o.ApiKey = apiKey
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithLocation overrides the provider base URL.
func WithLocation(loc string) Option {
	return func(o *Options) {
		o.Location = loc
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithTemperature(temperature float32) Option {
	return func(o *Options) {
		o.Temperature = temperature
	}
}

// WithCandidates sets how many completions to request per call, where the
// provider supports more than one.
func WithCandidates(n int) Option {
	return func(o *Options) {
		o.Candidates = n
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		MaxTokens:  1024,
		Candidates: 1,
		Context:    context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
