package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/w-h-a/answerbot/server"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type httpServer struct {
	options  server.Options
	handler  http.Handler
	server   *http.Server
	listener net.Listener
	errCh    chan error
	mtx      sync.RWMutex
}

func (s *httpServer) Options() server.Options {
	return s.options
}

func (s *httpServer) Handle(handler any) error {
	h, ok := handler.(http.Handler)
	if !ok {
		return fmt.Errorf("http server cannot handle %T", handler)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.handler = h

	return nil
}

func (s *httpServer) Start() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.server != nil {
		return errors.New("http server already started")
	}

	if s.handler == nil {
		return errors.New("http server has no handler")
	}

	listener, err := net.Listen("tcp", s.options.Address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.wrap(s.handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if t, ok := TimeoutsFrom(s.options.Context); ok {
		srv.ReadHeaderTimeout = t.ReadHeader
		srv.ReadTimeout = t.Read
		srv.WriteTimeout = t.Write
		srv.IdleTimeout = t.Idle
	}

	s.server = srv
	s.listener = listener
	s.errCh = make(chan error, 1)

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(s.options.Context, "http server stopped", "error", err)
			s.errCh <- err
		}
		close(s.errCh)
	}()

	slog.InfoContext(s.options.Context, "http server listening", "name", s.options.Name, "address", listener.Addr().String())

	return nil
}

func (s *httpServer) Stop(ctx context.Context) error {
	s.mtx.Lock()
	srv := s.server
	errCh := s.errCh
	s.server = nil
	s.mtx.Unlock()

	if srv == nil {
		return nil
	}

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	return <-errCh
}

// Address is the bound address once started, so ":0" can be used in tests.
func (s *httpServer) Address() string {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if s.listener == nil {
		return s.options.Address
	}

	return s.listener.Addr().String()
}

func (s *httpServer) wrap(h http.Handler) http.Handler {
	if ms, ok := MiddlewareFrom(s.options.Context); ok {
		for i := len(ms) - 1; i >= 0; i-- {
			h = ms[i](h)
		}
	}

	h = RequestID(h)

	return otelhttp.NewHandler(h, s.options.Name)
}

func NewServer(opts ...server.Option) server.Server {
	options := server.NewOptions(opts...)

	return &httpServer{
		options: options,
	}
}
