package form

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/nurpe/contracts-admin/internal/model"
	"github.com/nurpe/contracts-admin/internal/query"
	"github.com/nurpe/contracts-admin/internal/resource"
)

var errStillLoading = errors.New("reference data still loading")

// Refs are the option lists behind a form's select controls.
type Refs struct {
	Areas          []model.BusinessArea
	Managers       []model.Manager
	Roles          []model.Role
	Contracts      []model.Contract
	FinancialTypes []model.FinancialType
}

// RefLoader fills one field of Refs. Loaders run concurrently and must
// write disjoint fields.
type RefLoader func(ctx context.Context, refs *Refs) error

// LoadRefs runs loaders in parallel and records the outcome on st.
func LoadRefs(ctx context.Context, st *State, loaders ...RefLoader) {
	g, gctx := errgroup.WithContext(ctx)
	refs := &Refs{}
	for _, load := range loaders {
		g.Go(func() error {
			return load(gctx, refs)
		})
	}
	err := g.Wait()

	st.Refs = *refs
	st.RefsLoading = errors.Is(err, errStillLoading)
	if err != nil && !st.RefsLoading {
		st.RefsError = err
	}
}

func fromResult[T any](r query.Result[T]) (T, error) {
	switch {
	case r.IsLoading:
		return r.Data, errStillLoading
	case r.IsError:
		return r.Data, r.Err
	default:
		return r.Data, nil
	}
}

func Areas(res *resource.Resources, qc *query.Client) RefLoader {
	return func(ctx context.Context, refs *Refs) error {
		v, err := fromResult(res.BusinessAreas.List(ctx, qc))
		refs.Areas = v
		return err
	}
}

func Managers(res *resource.Resources, qc *query.Client) RefLoader {
	return func(ctx context.Context, refs *Refs) error {
		v, err := fromResult(res.Managers.List(ctx, qc))
		refs.Managers = v
		return err
	}
}

func Roles(res *resource.Resources, qc *query.Client) RefLoader {
	return func(ctx context.Context, refs *Refs) error {
		v, err := fromResult(res.Roles(ctx, qc))
		refs.Roles = v
		return err
	}
}

func Contracts(res *resource.Resources, qc *query.Client) RefLoader {
	return func(ctx context.Context, refs *Refs) error {
		v, err := fromResult(res.Contracts.List(ctx, qc))
		refs.Contracts = v
		return err
	}
}

// FinancialTypes is a fixed catalogue and never fails.
func FinancialTypes() RefLoader {
	return func(_ context.Context, refs *Refs) error {
		refs.FinancialTypes = model.FinancialTypes
		return nil
	}
}
