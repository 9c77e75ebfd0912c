package http

import (
	"context"
	"net/http"
	"time"

	"github.com/w-h-a/answerbot/server"
)

type middlewareKey struct{}

// WithMiddleware wraps the handler; the first middleware is the outermost.
func WithMiddleware(ms ...func(h http.Handler) http.Handler) server.Option {
	return func(o *server.Options) {
		o.Context = context.WithValue(o.Context, middlewareKey{}, ms)
	}
}

func MiddlewareFrom(ctx context.Context) ([]func(h http.Handler) http.Handler, bool) {
	ms, ok := ctx.Value(middlewareKey{}).([]func(h http.Handler) http.Handler)
	return ms, ok
}

type timeoutsKey struct{}

type Timeouts struct {
	ReadHeader time.Duration
	Read       time.Duration
	Write      time.Duration
	Idle       time.Duration
}

func WithTimeouts(t Timeouts) server.Option {
	return func(o *server.Options) {
		o.Context = context.WithValue(o.Context, timeoutsKey{}, t)
	}
}

func TimeoutsFrom(ctx context.Context) (Timeouts, bool) {
	t, ok := ctx.Value(timeoutsKey{}).(Timeouts)
	return t, ok
}
