package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/contracts-admin/internal/apiclient"
)

type fakeCredentials struct {
	mu          sync.Mutex
	token       string
	invalidated int
}

func (f *fakeCredentials) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeCredentials) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
}

func newClient(t *testing.T, h http.Handler, timeout time.Duration) (*apiclient.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	client, err := apiclient.New(apiclient.Config{BaseURL: server.URL + "/api/v1/", Timeout: timeout})
	require.NoError(t, err)
	return client, server
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := apiclient.New(apiclient.Config{})
	require.Error(t, err)
}

func TestAttachesBearerToken(t *testing.T) {
	var got *http.Request
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"North"}]`))
	}), 0)

	creds := &fakeCredentials{token: "abc"}
	ctx := apiclient.WithCredentials(context.Background(), creds)

	var out []map[string]any
	require.NoError(t, client.Get(ctx, "/business-areas", nil, &out))

	require.NotNil(t, got)
	assert.Equal(t, "/api/v1/business-areas", got.URL.Path)
	assert.Equal(t, "Bearer abc", got.Header.Get("Authorization"))
	assert.Len(t, out, 1)
}

func TestOmitsAuthorizationWithoutToken(t *testing.T) {
	var header string
	var seen bool
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header, seen = r.Header.Get("Authorization"), true
		w.WriteHeader(http.StatusNoContent)
	}), 0)

	require.NoError(t, client.Delete(context.Background(), "/contracts/1"))
	require.True(t, seen)
	assert.Empty(t, header)

	ctx := apiclient.WithCredentials(context.Background(), &fakeCredentials{})
	require.NoError(t, client.Delete(ctx, "/contracts/1"))
	assert.Empty(t, header)
}

func TestUnauthorizedInvalidatesCredentials(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	}), 0)

	creds := &fakeCredentials{token: "stale"}
	ctx := apiclient.WithCredentials(context.Background(), creds)

	err := client.Get(ctx, "/contracts", nil, &[]any{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apiclient.ErrUnauthorized))
	assert.Equal(t, 1, creds.invalidated)
}

func TestUnauthorizedWithoutTokenDoesNotInvalidate(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	}), 0)

	creds := &fakeCredentials{}
	ctx := apiclient.WithCredentials(context.Background(), creds)

	err := client.Post(ctx, "/auth/login", map[string]string{"username": "x"}, nil)
	require.Error(t, err)
	assert.Equal(t, 0, creds.invalidated)
	assert.Equal(t, "Invalid credentials", apiclient.MessageOf(err, "fallback"))
}

func TestErrorStatusesPassThrough(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "json message", status: http.StatusConflict, body: `{"message":"Contract number already exists"}`, message: "Contract number already exists"},
		{name: "json error field", status: http.StatusBadRequest, body: `{"error":"bad payload"}`, message: "bad payload"},
		{name: "plain text", status: http.StatusInternalServerError, body: "boom", message: "boom"},
		{name: "empty body", status: http.StatusNotFound, body: "", message: "client error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}), 0)

			err := client.Get(context.Background(), "/contracts/1", nil, &map[string]any{})
			require.Error(t, err)

			var apiErr *apiclient.Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.status, apiclient.StatusOf(err))
			assert.False(t, errors.Is(err, apiclient.ErrUnauthorized))
		})
	}
}

func TestSendsJSONBody(t *testing.T) {
	var received map[string]any
	var method, contentType string
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":5,"name":"North"}`))
	}), 0)

	var out struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, client.Put(context.Background(), "business-areas/5", map[string]string{"name": "North"}, &out))

	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "North", received["name"])
	assert.Equal(t, int64(5), out.ID)
}

func TestTimeoutSurfacesAsError(t *testing.T) {
	release := make(chan struct{})
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}), 50*time.Millisecond)
	defer close(release)

	err := client.Get(context.Background(), "/contracts", nil, &[]any{})
	require.Error(t, err)
	assert.Equal(t, 0, apiclient.StatusOf(err))
}

func TestDownload(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ACTIVE", r.URL.Query().Get("status"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="contracts.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.4"))
	}), 0)

	dl, err := client.Download(context.Background(), "/contracts/export/pdf", map[string][]string{"status": {"ACTIVE"}})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", dl.ContentType)
	assert.Equal(t, "contracts.pdf", dl.FileName)
	assert.Equal(t, []byte("%PDF-1.4"), dl.Content)
}

func TestStatusCodeRangeOf(t *testing.T) {
	assert.Equal(t, apiclient.Status2xx, apiclient.StatusCodeRangeOf(204))
	assert.Equal(t, apiclient.Status4xx, apiclient.StatusCodeRangeOf(404))
	assert.Equal(t, apiclient.Status5xx, apiclient.StatusCodeRangeOf(503))
	assert.Equal(t, apiclient.StatusUnknown, apiclient.StatusCodeRangeOf(700))
	assert.Equal(t, "server error", apiclient.Status5xx.String())
}

func TestMessageOfFallsBackWithoutBody(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}), 0)

	err := client.Get(context.Background(), "/contracts", nil, &[]any{})
	require.Error(t, err)
	assert.Equal(t, "try later", apiclient.MessageOf(err, "try later"))
	assert.Equal(t, "try later", apiclient.MessageOf(errors.New("dial"), "try later"))
}

func TestLongPlainMessageIsCutOnRuneBoundary(t *testing.T) {
	body := strings.Repeat("a", 499) + strings.Repeat("ä", 10)
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(body))
	}), 0)

	err := client.Get(context.Background(), "/contracts", nil, &[]any{})
	require.Error(t, err)

	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, utf8.ValidString(apiErr.Message))
	assert.Equal(t, strings.Repeat("a", 499), apiErr.Message)
}
