package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/nurpe/contracts-admin/internal/http/middleware"
	"github.com/nurpe/contracts-admin/internal/model"
	"github.com/nurpe/contracts-admin/internal/query"
)

// section is one independently degrading part of the dashboard.
type section[T any] struct {
	Data    T
	Loading bool
	Error   string
}

func sectionOf[T any](r query.Result[T], failure string) section[T] {
	s := section[T]{Data: r.Data, Loading: r.IsLoading}
	if r.IsError {
		s.Error = failure
	}
	return s
}

// StatusSlice is one bar of the status breakdown.
type StatusSlice struct {
	Label   string
	Count   int64
	Variant string
}

type dashboardData struct {
	Stats        section[*model.ContractStats]
	Breakdown    []StatusSlice
	ByArea       section[[]model.AreaCount]
	Timeline     section[[]model.TimelinePoint]
	TopManagers  section[[]model.ManagerCount]
	Expiring     section[[]model.Contract]
	ExpiringDays int
}

// Breakdown derives the status chart from the counts; "other" is whatever
// is neither active nor expired.
func Breakdown(s *model.ContractStats) []StatusSlice {
	if s == nil {
		return nil
	}
	other := max(s.Total-s.Active-s.Expired, 0)
	return []StatusSlice{
		{Label: "Active", Count: s.Active, Variant: "success"},
		{Label: "Expired", Count: s.Expired, Variant: "destructive"},
		{Label: "Expiring soon", Count: s.Expiring, Variant: "warning"},
		{Label: "Other", Count: other, Variant: "secondary"},
	}
}

func (d dashboardData) BreakdownTotal() int64 {
	var total int64
	for _, s := range d.Breakdown {
		total += s.Count
	}
	return total
}

func (d dashboardData) MaxByArea() int64 {
	var m int64
	for _, a := range d.ByArea.Data {
		m = max(m, a.Count)
	}
	return m
}

func (d dashboardData) MaxTimeline() int64 {
	var m int64
	for _, p := range d.Timeline.Data {
		m = max(m, p.Count)
	}
	return m
}

func (h *Handler) dashboard(c *gin.Context) {
	ctx, qc := c.Request.Context(), middleware.QueryClient(c)
	contracts := h.res.Contracts
	d := dashboardData{ExpiringDays: h.opts.ExpiringDays}

	var g errgroup.Group
	g.Go(func() error {
		d.Stats = sectionOf(contracts.Stats(ctx, qc), "Failed to load statistics.")
		d.Breakdown = Breakdown(d.Stats.Data)
		return nil
	})
	g.Go(func() error {
		d.ByArea = sectionOf(contracts.StatsByArea(ctx, qc), "Failed to load contracts by area.")
		return nil
	})
	g.Go(func() error {
		d.Timeline = sectionOf(contracts.Timeline(ctx, qc), "Failed to load timeline.")
		return nil
	})
	g.Go(func() error {
		d.TopManagers = sectionOf(contracts.TopManagers(ctx, qc), "Failed to load top managers.")
		return nil
	})
	g.Go(func() error {
		d.Expiring = sectionOf(contracts.Expiring(ctx, qc, h.opts.ExpiringDays), "Failed to load expiring contracts.")
		return nil
	})
	_ = g.Wait()

	h.render(c, http.StatusOK, "dashboard", "Dashboard", "dashboard", d)
}

func serveJSON[T any](h *Handler, c *gin.Context, r query.Result[T]) {
	if middleware.Rejected(c) {
		return
	}
	switch {
	case r.IsError:
		h.handleError(c, r.Err)
	case r.IsLoading:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "still loading"})
	default:
		c.JSON(http.StatusOK, r.Data)
	}
}

func (h *Handler) apiStats(c *gin.Context) {
	serveJSON(h, c, h.res.Contracts.Stats(c.Request.Context(), middleware.QueryClient(c)))
}

func (h *Handler) apiByArea(c *gin.Context) {
	serveJSON(h, c, h.res.Contracts.StatsByArea(c.Request.Context(), middleware.QueryClient(c)))
}

func (h *Handler) apiTimeline(c *gin.Context) {
	serveJSON(h, c, h.res.Contracts.Timeline(c.Request.Context(), middleware.QueryClient(c)))
}

func (h *Handler) apiTopManagers(c *gin.Context) {
	serveJSON(h, c, h.res.Contracts.TopManagers(c.Request.Context(), middleware.QueryClient(c)))
}

