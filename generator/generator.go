package generator

import "context"

// Generator returns every candidate completion the provider produced for
// chat. Callers decide what a candidate count other than one means.
type Generator interface {
	Generate(ctx context.Context, chat *Chat) ([]Completion, error)
}

type Completion struct {
	Content string
}
