package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/contracts-admin/internal/model"
	"github.com/nurpe/contracts-admin/internal/query"
	"github.com/nurpe/contracts-admin/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "existing-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "existing-123", w.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	router := gin.New()
	router.Use(RequestID(), Recovery(zerolog.New(&buf)))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })
	router.GET("/api/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), w.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), "panic recovered")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"request_id"`)
}

func TestRequestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	router := gin.New()
	router.Use(RequestID(), RequestLogger(zerolog.New(&buf)))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok?q=1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"info"`)
	assert.Contains(t, lines[0], `"query":"q=1"`)
	assert.Contains(t, lines[1], `"level":"warn"`)
}

func newSessionRouter(t *testing.T, handler gin.HandlerFunc) (*gin.Engine, *session.Manager, *query.Registry) {
	t.Helper()
	mgr := session.NewManager(session.NewMemoryStore(), session.Config{}, zerolog.Nop())
	reg := query.NewRegistry(zerolog.Nop())
	router := gin.New()
	router.Use(Session(mgr, reg, zerolog.Nop()))
	router.GET("/contracts", handler)
	router.GET("/api/dashboard/stats", handler)
	return router, mgr, reg
}

func login(t *testing.T, mgr *session.Manager) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	_, err := mgr.Establish(context.Background(), w, "token", model.User{Username: "admin", Role: model.RoleAdmin})
	require.NoError(t, err)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSessionRedirectsWithoutCookie(t *testing.T) {
	router, _, _ := newSessionRouter(t, func(c *gin.Context) {
		t.Fatal("handler must not run")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contracts", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionBindsSessionAndCache(t *testing.T) {
	var got *session.Session
	var qc *query.Client
	router, mgr, reg := newSessionRouter(t, func(c *gin.Context) {
		got, qc = CurrentSession(c), QueryClient(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/contracts", nil)
	req.AddCookie(login(t, mgr))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, "token", got.Token())
	assert.NotNil(t, qc)
	assert.Equal(t, 1, reg.Len())
}

func TestSessionInvalidatedMidRequestRedirectsOnce(t *testing.T) {
	router, mgr, reg := newSessionRouter(t, func(c *gin.Context) {
		s := CurrentSession(c)
		s.Invalidate()
		s.Invalidate()
		if Rejected(c) {
			return
		}
		c.String(http.StatusOK, "rendered")
	})

	cookie := login(t, mgr)
	req := httptest.NewRequest(http.MethodGet, "/contracts", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, []string{LoginPath}, w.Header().Values("Location"))
	assert.NotContains(t, w.Body.String(), "rendered")
	assert.Zero(t, reg.Len())

	var expired bool
	for _, ck := range w.Result().Cookies() {
		if ck.Name == mgr.CookieName() && ck.MaxAge < 0 {
			expired = true
		}
	}
	assert.True(t, expired)

	// the record is gone, so the same cookie no longer authenticates
	req = httptest.NewRequest(http.MethodGet, "/contracts", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}
