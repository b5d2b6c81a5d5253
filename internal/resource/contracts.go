package resource

import (
	"context"
	"time"

	"github.com/nurpe/contracts-admin/internal/apiclient"
	"github.com/nurpe/contracts-admin/internal/model"
	"github.com/nurpe/contracts-admin/internal/query"
	"github.com/nurpe/contracts-admin/internal/service"
)

const contractsSeries = "contracts/paged"

type Contracts struct {
	*Entity[model.Contract, model.ContractPayload]
	svc       *service.ContractService
	reference time.Duration
	list      time.Duration
}

func (r *Contracts) SearchKey(params service.SearchParams) query.Key {
	return r.Key().Append("paged", params)
}

// Search reads one page through the table observer so the previous page
// stays on screen while a new one is loading or failed.
func (r *Contracts) Search(ctx context.Context, c *query.Client, params service.SearchParams) query.Result[*model.Page[model.Contract]] {
	obs := query.ObserverFor[*model.Page[model.Contract]](c, contractsSeries)
	return obs.Observe(ctx, c, query.Query[*model.Page[model.Contract]]{
		Key: r.SearchKey(params),
		Fn: func(ctx context.Context) (*model.Page[model.Contract], error) {
			return r.svc.Search(ctx, params)
		},
	})
}

func (r *Contracts) Expiring(ctx context.Context, c *query.Client, days int) query.Result[[]model.Contract] {
	return query.Fetch(ctx, c, query.Query[[]model.Contract]{
		Key: r.Key().Append("expiring", days),
		Fn: func(ctx context.Context) ([]model.Contract, error) {
			return r.svc.Expiring(ctx, days)
		},
		StaleTime: r.list,
	})
}

func (r *Contracts) Stats(ctx context.Context, c *query.Client) query.Result[*model.ContractStats] {
	return query.Fetch(ctx, c, query.Query[*model.ContractStats]{
		Key:       r.Key().Append("stats"),
		Fn:        r.svc.Stats,
		StaleTime: r.reference,
	})
}

func (r *Contracts) StatsByArea(ctx context.Context, c *query.Client) query.Result[[]model.AreaCount] {
	return query.Fetch(ctx, c, query.Query[[]model.AreaCount]{
		Key:       r.Key().Append("stats", "by-area"),
		Fn:        r.svc.StatsByArea,
		StaleTime: r.reference,
	})
}

func (r *Contracts) Timeline(ctx context.Context, c *query.Client) query.Result[[]model.TimelinePoint] {
	return query.Fetch(ctx, c, query.Query[[]model.TimelinePoint]{
		Key:       r.Key().Append("stats", "timeline"),
		Fn:        r.svc.Timeline,
		StaleTime: r.reference,
	})
}

func (r *Contracts) TopManagers(ctx context.Context, c *query.Client) query.Result[[]model.ManagerCount] {
	return query.Fetch(ctx, c, query.Query[[]model.ManagerCount]{
		Key:       r.Key().Append("stats", "top-managers"),
		Fn:        r.svc.TopManagers,
		StaleTime: r.reference,
	})
}

// Exports are never cached.
func (r *Contracts) ExportExcel(ctx context.Context, params service.SearchParams) (*apiclient.Download, error) {
	return r.svc.ExportExcel(ctx, params)
}

func (r *Contracts) ExportPDF(ctx context.Context, params service.SearchParams) (*apiclient.Download, error) {
	return r.svc.ExportPDF(ctx, params)
}
