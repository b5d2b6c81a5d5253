package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/contracts-admin/internal/metrics"
)

// TokenSource supplies the bearer credential for one browser session and is
// told when the backend rejected it.
type TokenSource interface {
	Token() string
	Invalidate()
}

type credentialsKey struct{}

// WithCredentials binds the session credential to every backend call made
// with the returned context.
func WithCredentials(ctx context.Context, src TokenSource) context.Context {
	return context.WithValue(ctx, credentialsKey{}, src)
}

func credentialsFrom(ctx context.Context) TokenSource {
	src, _ := ctx.Value(credentialsKey{}).(TokenSource)
	return src
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpclient = hc
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

type Client struct {
	httpclient *http.Client
	api        string
	log        zerolog.Logger
}

func New(cfg Config, opts ...Option) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, errors.New("apiclient: base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("apiclient: invalid base url: %w", err)
	}

	c := &Client{
		httpclient: &http.Client{Timeout: cfg.Timeout},
		api:        strings.TrimSuffix(base, "/"),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// build URL with path
func (c *Client) apipath(query url.Values, path ...string) string {
	parts := make([]string, 0, len(path)+1)
	parts = append(parts, c.api)
	for _, p := range path {
		p = strings.Trim(p, "/")
		if p != "" {
			parts = append(parts, p)
		}
	}
	u := strings.Join(parts, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Do sends a JSON request and decodes a JSON response into out. A nil out
// discards the response body.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Download is a raw binary payload such as an export file.
type Download struct {
	ContentType string
	FileName    string
	Content     []byte
}

func (c *Client) Download(ctx context.Context, path string, query url.Values) (*Download, error) {
	resp, err := c.send(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: read body: %w", path, err)
	}
	return &Download{
		ContentType: resp.Header.Get("Content-Type"),
		FileName:    attachmentName(resp.Header.Get("Content-Disposition")),
		Content:     content,
	}, nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode body: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apipath(query, path), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	src := credentialsFrom(ctx)
	if src != nil {
		if token := src.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpclient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		metrics.ObserveBackend(method, 0, elapsed)
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Dur("duration", elapsed).Msg("backend call failed")
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	metrics.ObserveBackend(method, resp.StatusCode, elapsed)
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", elapsed).
		Msg("backend call")

	if resp.StatusCode == http.StatusUnauthorized && src != nil && src.Token() != "" {
		src.Invalidate()
	}
	return resp, nil
}

func attachmentName(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}
