package query

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Registry holds one Client per browser session.
type Registry struct {
	mu      sync.Mutex
	clients map[string]*Client
	opts    []Option
	now     func() time.Time
	log     zerolog.Logger
}

func NewRegistry(log zerolog.Logger, opts ...Option) *Registry {
	return &Registry{
		clients: make(map[string]*Client),
		opts:    append([]Option{WithLogger(log)}, opts...),
		now:     time.Now,
		log:     log,
	}
}

func (r *Registry) For(sessionID string) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[sessionID]
	if !ok {
		c = NewClient(r.opts...)
		r.clients[sessionID] = c
	}
	return c
}

func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, sessionID)
}

// Sweep drops clients unused for longer than idle.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-idle)
	n := 0
	for id, c := range r.clients {
		if c.idleSince().Before(cutoff) {
			delete(r.clients, id)
			n++
		}
	}
	if n > 0 {
		r.log.Debug().Int("sessions", n).Msg("swept idle query caches")
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
