package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/contracts-admin/internal/model"
)

type Config struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager owns the session lifecycle: Init from the cookie, Establish on
// login and Clear on logout or rejection by the backend.
type Manager struct {
	store  Store
	cfg    Config
	now    func() time.Time
	log    zerolog.Logger
	parser *jwt.Parser
}

func NewManager(store Store, cfg Config, log zerolog.Logger) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = "auth_token"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}
	return &Manager{
		store:  store,
		cfg:    cfg,
		now:    time.Now,
		log:    log,
		parser: jwt.NewParser(),
	}
}

func (m *Manager) CookieName() string {
	return m.cfg.CookieName
}

// Init restores the session named by the request cookie.
func (m *Manager) Init(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return nil, ErrNotFound
	}

	rec, err := m.store.Load(r.Context(), cookie.Value)
	if err != nil {
		return nil, err
	}

	now := m.now()
	if !rec.ExpiresAt.After(now) {
		m.drop(r.Context(), rec.ID)
		return nil, ErrExpired
	}
	if exp, ok := m.tokenExpiry(rec.Token); ok && !exp.After(now) {
		m.drop(r.Context(), rec.ID)
		return nil, ErrTokenExpired
	}
	return newSession(*rec, m.invalidate), nil
}

// Establish persists a new session for token and sets the cookie.
func (m *Manager) Establish(ctx context.Context, w http.ResponseWriter, token string, user model.User) (*Session, error) {
	now := m.now()
	expires := now.Add(m.cfg.TTL)
	if exp, ok := m.tokenExpiry(token); ok {
		if !exp.After(now) {
			return nil, ErrTokenExpired
		}
		if exp.Before(expires) {
			expires = exp
		}
	}

	rec := Record{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		ExpiresAt: expires,
		CreatedAt: now,
	}
	if err := m.store.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    rec.ID,
		Path:     "/",
		MaxAge:   int(expires.Sub(now).Seconds()),
		Expires:  expires,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	return newSession(rec, m.invalidate), nil
}

// Clear invalidates s (which drops it from the store) and removes the cookie.
func (m *Manager) Clear(w http.ResponseWriter, s *Session) {
	s.Invalidate()
	m.ExpireCookie(w)
}

func (m *Manager) ExpireCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Purge removes expired records from the store.
func (m *Manager) Purge(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx, m.now())
}

func (m *Manager) invalidate(s *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	m.drop(ctx, s.ID)
	m.log.Info().Str("session_id", s.ID).Str("username", s.User.Username).Msg("session cleared")
}

func (m *Manager) drop(ctx context.Context, id string) {
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		m.log.Error().Err(err).Str("session_id", id).Msg("delete session failed")
	}
}

// tokenExpiry reads exp without verifying the signature; the backend is
// the only party that can verify it.
func (m *Manager) tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := m.parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.UTC(), true
}
