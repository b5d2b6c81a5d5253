package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nurpe/contracts-admin/internal/model"
)

// Record is the persisted part of a session.
type Record struct {
	ID        string
	Token     string
	User      model.User
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Session is the per-request view of a Record. It is the credential source
// for backend calls and is invalidated at most once.
type Session struct {
	Record

	once         sync.Once
	invalidated  atomic.Bool
	onInvalidate func(*Session)
}

func newSession(rec Record, onInvalidate func(*Session)) *Session {
	return &Session{Record: rec, onInvalidate: onInvalidate}
}

// Token implements apiclient.TokenSource. An invalidated session has no token.
func (s *Session) Token() string {
	if s == nil || s.invalidated.Load() {
		return ""
	}
	return s.Record.Token
}

// Invalidate clears the persisted credential. Later calls are no-ops.
func (s *Session) Invalidate() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.invalidated.Store(true)
		if s.onInvalidate != nil {
			s.onInvalidate(s)
		}
	})
}

func (s *Session) Invalidated() bool {
	return s != nil && s.invalidated.Load()
}

func (s *Session) Role() string {
	if s == nil {
		return ""
	}
	return s.User.Role
}

type ctxKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
