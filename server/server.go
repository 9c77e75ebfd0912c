package server

import "context"

type Server interface {
	Options() Options
	Handle(handler any) error
	Start() error
	Stop(ctx context.Context) error
	Address() string
}
