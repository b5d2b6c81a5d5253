package query

import "context"

// Mutation runs a write and, only when it succeeds, invalidates every
// prefix in Invalidates. Failures are returned as is; nothing is retried.
type Mutation[P, R any] struct {
	Fn          func(ctx context.Context, input P) (R, error)
	Invalidates []Key
}

func (m Mutation[P, R]) Run(ctx context.Context, c *Client, input P) (R, error) {
	out, err := m.Fn(ctx, input)
	if err != nil {
		return out, err
	}
	for _, prefix := range m.Invalidates {
		c.Invalidate(prefix)
	}
	return out, nil
}
