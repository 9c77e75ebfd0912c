package answerbot

import (
	"fmt"

	"github.com/w-h-a/answerbot/embedder"
)

type Option func(*Options)

type Options struct {
	Embedder        embedder.Embedder
	CitationBaseURL string
}

// WithEmbedder adds a query vector to every search that is not in "Text" mode.
func WithEmbedder(e embedder.Embedder) Option {
	return func(o *Options) {
		o.Embedder = e
	}
}

func WithCitationBaseURL(url string) Option {
	return func(o *Options) {
		o.CitationBaseURL = url
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// CitationBaseURL prefers an explicit url and otherwise points at the blob
// container holding the cited documents.
func CitationBaseURL(account string, container string, url string) string {
	if len(url) > 0 {
		return url
	}
	if len(account) == 0 || len(container) == 0 {
		return ""
	}
	return fmt.Sprintf("https://%s.blob.core.windows.net/%s", account, container)
}
