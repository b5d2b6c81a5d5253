package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/nurpe/contracts-admin/internal/apiclient"
	"github.com/nurpe/contracts-admin/internal/form"
	"github.com/nurpe/contracts-admin/internal/http/middleware"
	"github.com/nurpe/contracts-admin/internal/session"
)

const loginFailed = "Login failed. Please try again."

type loginData struct {
	Username string
	Errors   form.ValidationErrors
	Failure  string
}

func (h *Handler) loginPage(c *gin.Context) {
	if s, err := h.sessions.Init(c.Request); err == nil && !s.Invalidated() {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	h.render(c, http.StatusOK, "login", "Sign in", "", loginData{})
}

func (h *Handler) login(c *gin.Context) {
	var f form.LoginForm
	if err := c.ShouldBindWith(&f, binding.Form); err != nil {
		h.render(c, http.StatusBadRequest, "login", "Sign in", "", loginData{Failure: loginFailed})
		return
	}
	if errs, ok := f.Ok(); !ok {
		h.render(c, http.StatusUnprocessableEntity, "login", "Sign in", "", loginData{Username: f.Username, Errors: errs})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), f.Username, f.Password)
	if err != nil {
		status := http.StatusUnauthorized
		if !errors.Is(err, apiclient.ErrUnauthorized) && apiclient.StatusOf(err) == 0 {
			status = http.StatusBadGateway
		}
		h.log.Info().Err(err).Str("username", f.Username).Msg("login rejected")
		h.render(c, status, "login", "Sign in", "", loginData{
			Username: f.Username,
			Failure:  apiclient.MessageOf(err, loginFailed),
		})
		return
	}

	s, err := h.sessions.Establish(c.Request.Context(), c.Writer, token, *user)
	if err != nil {
		h.log.Error().Err(err).Str("username", f.Username).Msg("establish session failed")
		failure := loginFailed
		if errors.Is(err, session.ErrTokenExpired) {
			failure = "Your session has expired. Please sign in again."
		}
		h.render(c, http.StatusInternalServerError, "login", "Sign in", "", loginData{Username: f.Username, Failure: failure})
		return
	}
	h.log.Info().Str("session_id", s.ID).Str("username", s.User.Username).Msg("signed in")
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) logout(c *gin.Context) {
	if s := middleware.CurrentSession(c); s != nil {
		h.sessions.Clear(c.Writer, s)
		h.registry.Drop(s.ID)
	}
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}
