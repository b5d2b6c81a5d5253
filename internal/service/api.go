package service

import (
	"context"
	"net/url"

	"github.com/nurpe/contracts-admin/internal/apiclient"
)

// API is the subset of the backend client the services rely on.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
	Download(ctx context.Context, path string, query url.Values) (*apiclient.Download, error)
}

var _ API = (*apiclient.Client)(nil)
