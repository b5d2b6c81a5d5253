package resource

import (
	"context"
	"time"

	"github.com/nurpe/contracts-admin/internal/query"
)

type Mode int

const (
	Create Mode = iota
	Update
)

func (m Mode) String() string {
	if m == Update {
		return "update"
	}
	return "create"
}

// UpsertRequest is either a create (ID ignored) or an update of ID.
type UpsertRequest[P any] struct {
	Mode    Mode
	ID      int64
	Payload P
}

func CreateRequest[P any](payload P) UpsertRequest[P] {
	return UpsertRequest[P]{Mode: Create, Payload: payload}
}

func UpdateRequest[P any](id int64, payload P) UpsertRequest[P] {
	return UpsertRequest[P]{Mode: Update, ID: id, Payload: payload}
}

// Policy holds the staleness windows. Paged searches and detail reads are
// always fetched.
type Policy struct {
	Reference time.Duration
	List      time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Reference: 5 * time.Minute, List: 2 * time.Minute}
}

type crudService[E, P any] interface {
	List(ctx context.Context) ([]E, error)
	Get(ctx context.Context, id int64) (*E, error)
	Create(ctx context.Context, payload P) (*E, error)
	Update(ctx context.Context, id int64, payload P) (*E, error)
	Delete(ctx context.Context, id int64) error
}

// Entity binds one backend collection to the session cache.
type Entity[E, P any] struct {
	name    string
	svc     crudService[E, P]
	stale   time.Duration
	related []query.Key
}

// NewEntity caches the list for stale. A successful write invalidates the
// entity prefix plus every related prefix.
func NewEntity[E, P any](name string, svc crudService[E, P], stale time.Duration, related ...query.Key) *Entity[E, P] {
	return &Entity[E, P]{name: name, svc: svc, stale: stale, related: related}
}

func (e *Entity[E, P]) Key() query.Key {
	return query.K(e.name)
}

func (e *Entity[E, P]) List(ctx context.Context, c *query.Client) query.Result[[]E] {
	return query.Fetch(ctx, c, query.Query[[]E]{
		Key:       e.Key(),
		Fn:        e.svc.List,
		StaleTime: e.stale,
	})
}

func (e *Entity[E, P]) Get(ctx context.Context, c *query.Client, id int64) query.Result[*E] {
	return query.Fetch(ctx, c, query.Query[*E]{
		Key: e.Key().Append("detail", id),
		Fn: func(ctx context.Context) (*E, error) {
			return e.svc.Get(ctx, id)
		},
	})
}

func (e *Entity[E, P]) invalidates() []query.Key {
	return append([]query.Key{e.Key()}, e.related...)
}

func (e *Entity[E, P]) Upsert(ctx context.Context, c *query.Client, req UpsertRequest[P]) (*E, error) {
	m := query.Mutation[UpsertRequest[P], *E]{
		Fn: func(ctx context.Context, req UpsertRequest[P]) (*E, error) {
			if req.Mode == Update {
				return e.svc.Update(ctx, req.ID, req.Payload)
			}
			return e.svc.Create(ctx, req.Payload)
		},
		Invalidates: e.invalidates(),
	}
	return m.Run(ctx, c, req)
}

func (e *Entity[E, P]) Delete(ctx context.Context, c *query.Client, id int64) error {
	m := query.Mutation[int64, struct{}]{
		Fn: func(ctx context.Context, id int64) (struct{}, error) {
			return struct{}{}, e.svc.Delete(ctx, id)
		},
		Invalidates: e.invalidates(),
	}
	_, err := m.Run(ctx, c, id)
	return err
}
