package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/contracts-admin/internal/apiclient"
	"github.com/nurpe/contracts-admin/internal/query"
	"github.com/nurpe/contracts-admin/internal/session"
)

const (
	LoginPath      = "/login"
	sessionKey     = "session"
	queryClientKey = "query_client"
)

// Session restores the browser session, binds its credential and query
// cache to the request, and sends the browser to the login page when there
// is no session or when the backend rejected it during the request.
func Session(mgr *session.Manager, registry *query.Registry, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := mgr.Init(c.Request)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("no session")
			mgr.ExpireCookie(c.Writer)
			rejectToLogin(c)
			return
		}

		ctx := session.NewContext(c.Request.Context(), s)
		ctx = apiclient.WithCredentials(ctx, s)
		c.Request = c.Request.WithContext(ctx)
		c.Set(sessionKey, s)
		c.Set(queryClientKey, registry.For(s.ID))

		c.Next()

		if !s.Invalidated() {
			return
		}
		registry.Drop(s.ID)
		if !c.Writer.Written() {
			mgr.ExpireCookie(c.Writer)
			rejectToLogin(c)
		}
	}
}

// Rejected reports whether the request's session was invalidated. Handlers
// stop rendering when it is, leaving the single redirect to Session.
func Rejected(c *gin.Context) bool {
	s := CurrentSession(c)
	return s != nil && s.Invalidated()
}

func CurrentSession(c *gin.Context) *session.Session {
	s, _ := c.Get(sessionKey)
	sess, _ := s.(*session.Session)
	return sess
}

func QueryClient(c *gin.Context) *query.Client {
	qc, _ := c.Get(queryClientKey)
	client, _ := qc.(*query.Client)
	return client
}

func rejectToLogin(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Redirect(http.StatusSeeOther, LoginPath)
	c.Abort()
}
