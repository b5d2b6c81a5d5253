package service

import (
	"context"
	"fmt"
	"strings"
)

// crud is the list/get/create/update/delete shape shared by every entity
// whose backend resource lives at /<base>[/{id}].
type crud[E, P any] struct {
	api  API
	base string
}

func (c crud[E, P]) path(id int64) string {
	return fmt.Sprintf("%s/%d", strings.TrimSuffix(c.base, "/"), id)
}

func (c crud[E, P]) list(ctx context.Context) ([]E, error) {
	var out []E
	if err := c.api.Get(ctx, c.base, nil, &out); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (c crud[E, P]) get(ctx context.Context, id int64) (*E, error) {
	var out E
	if err := c.api.Get(ctx, c.path(id), nil, &out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (c crud[E, P]) create(ctx context.Context, payload P) (*E, error) {
	var out E
	if err := c.api.Post(ctx, c.base, payload, &out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (c crud[E, P]) update(ctx context.Context, id int64, payload P) (*E, error) {
	var out E
	if err := c.api.Put(ctx, c.path(id), payload, &out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (c crud[E, P]) delete(ctx context.Context, id int64) error {
	return translate(c.api.Delete(ctx, c.path(id)))
}
