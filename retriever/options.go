package retriever

import "context"

type Option func(*Options)

type Options struct {
	Location   string
	ApiKey     string
	Collection string
	Context    context.Context
}

func WithLocation(loc string) Option {
	return func(o *Options) {
		o.Location = loc
	}
}

func WithApiKey(apiKey string) Option {
	return func(o *Options) {
		o.ApiKey = apiKey
	}
}

func WithCollection(collection string) Option {
	return func(o *Options) {
		o.Collection = collection
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

type SearchOption func(*SearchOptions)

type SearchOptions struct {
	Top              int
	SemanticCaptions bool
	SemanticRanker   bool
	ExcludeCategory  string
	Mode             string
	Embedding        []float32
	Context          context.Context
}

func WithTop(top int) SearchOption {
	return func(o *SearchOptions) {
		if top > 0 {
			o.Top = top
		}
	}
}

func WithSemanticCaptions(enabled bool) SearchOption {
	return func(o *SearchOptions) {
		o.SemanticCaptions = enabled
	}
}

func WithSemanticRanker(enabled bool) SearchOption {
	return func(o *SearchOptions) {
		o.SemanticRanker = enabled
	}
}

// WithExcludeCategory restricts results to records whose category differs
// from category. An empty category disables the filter.
func WithExcludeCategory(category string) SearchOption {
	return func(o *SearchOptions) {
		o.ExcludeCategory = category
	}
}

func WithRetrievalMode(mode string) SearchOption {
	return func(o *SearchOptions) {
		o.Mode = mode
	}
}

func WithEmbedding(vec []float32) SearchOption {
	return func(o *SearchOptions) {
		o.Embedding = vec
	}
}

func NewSearchOptions(opts ...SearchOption) SearchOptions {
	options := SearchOptions{
		Top:     3,
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// UseText reports whether a search with these options should use the text
// of q. Only "Vector" mode ignores it.
func (o SearchOptions) UseText(q Query) (string, bool) {
	if o.Mode == "Vector" {
		return "", false
	}
	return Text(q)
}

// UseVector reports whether the embedding should drive the search.
func (o SearchOptions) UseVector() bool {
	return o.Mode != "Text" && len(o.Embedding) > 0
}
