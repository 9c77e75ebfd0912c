package retriever

import "context"

type Retriever interface {
	Search(ctx context.Context, query Query, opts ...SearchOption) ([]Record, error)
}
