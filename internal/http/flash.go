package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/contracts-admin/internal/apiclient"
	"github.com/nurpe/contracts-admin/internal/http/middleware"
	"github.com/nurpe/contracts-admin/internal/table"
	"github.com/nurpe/contracts-admin/internal/view"
)

const flashCookie = "flash"

const (
	flashSuccess = "success"
	flashError   = "error"
)

// setFlash queues a notification for the next rendered page.
func (h *Handler) setFlash(c *gin.Context, kind, message, detail string) {
	raw, err := json.Marshal(view.Flash{Kind: kind, Message: message, Detail: detail})
	if err != nil {
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		Secure:   h.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlash reads and clears the pending notification.
func (h *Handler) takeFlash(c *gin.Context) *view.Flash {
	cookie, err := c.Request.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var f view.Flash
	if err := json.Unmarshal(raw, &f); err != nil || f.Message == "" {
		return nil
	}
	return &f
}

// exportFailed sends the browser back to the table it exported from with
// an error notification.
func (h *Handler) exportFailed(c *gin.Context, base string, p table.Params, err error) {
	if middleware.Rejected(c) || errors.Is(err, apiclient.ErrUnauthorized) {
		h.handleError(c, err)
		return
	}
	h.log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("export failed")
	h.setFlash(c, flashError, "Export failed", apiclient.MessageOf(err, ""))
	c.Redirect(http.StatusSeeOther, p.URL(base))
}
