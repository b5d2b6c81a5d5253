package http

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/nurpe/contracts-admin/internal/authz"
	"github.com/nurpe/contracts-admin/internal/dialog"
	"github.com/nurpe/contracts-admin/internal/form"
	"github.com/nurpe/contracts-admin/internal/http/middleware"
	"github.com/nurpe/contracts-admin/internal/query"
	"github.com/nurpe/contracts-admin/internal/resource"
	"github.com/nurpe/contracts-admin/internal/table"
)

// listData is what every list template renders: the table, and on top of
// it at most one open dialog (form or delete confirmation).
type listData[E any] struct {
	Base        string
	Single      string
	Plural      string
	View        table.View[E]
	Filters     []table.Option
	Sizes       []int
	Loading     bool
	Error       string
	Placeholder bool
	Can         authz.Affordances
	Names       names

	Form       *form.State
	FormAction string

	Delete       *table.DeleteFlow
	DeleteAction string
}

// Return is the encoded table state carried through dialog forms.
func (d listData[E]) Return() string {
	return d.View.Params.Encode()
}

func (d listData[E]) CloseURL() string {
	return d.View.Params.URL(d.Base)
}

func (d listData[E]) ClearURL() string {
	return d.View.Params.Cleared().URL(d.Base)
}

func (d listData[E]) PageURL(p table.Params) string {
	return p.URL(d.Base)
}

// names resolves foreign keys to display names for table cells.
type names struct {
	Areas     map[int64]string
	Managers  map[int64]string
	Roles     map[int64]string
	Contracts map[int64]string
}

type formPtr[F, P any] interface {
	*F
	form.Form[P]
}

type listing[E any] struct {
	view        table.View[E]
	filters     []table.Option
	loading     bool
	err         error
	placeholder bool
}

// entityPages serves the list, dialog and delete routes of one entity.
type entityPages[E, P, F any, FP formPtr[F, P]] struct {
	h        *Handler
	single   string
	plural   string
	object   string
	template string
	entity   *resource.Entity[E, P]
	spec     func(rows []E) table.Spec[E]
	newForm  func(e *E) F
	label    func(e E) string
	refs     func(c *gin.Context) []form.RefLoader
	names    func(c *gin.Context) names
	load     func(c *gin.Context, p table.Params) listing[E]
}

func (p *entityPages[E, P, F, FP]) base() string {
	return "/" + p.object
}

func (p *entityPages[E, P, F, FP]) register(g *gin.RouterGroup) {
	base := p.base()
	g.GET(base, p.list)
	g.POST(base, p.create)
	g.GET(base+"/new", p.newDialog)
	g.GET(base+"/:id/edit", p.editDialog)
	g.POST(base+"/:id", p.update)
	g.GET(base+"/:id/delete", p.confirmDelete)
	g.POST(base+"/:id/delete", p.delete)
}

func (p *entityPages[E, P, F, FP]) title() string {
	return strings.ToUpper(p.plural[:1]) + p.plural[1:]
}

// clientSide loads the full list and filters it in process.
func (p *entityPages[E, P, F, FP]) clientSide(c *gin.Context, params table.Params) listing[E] {
	res := p.entity.List(c.Request.Context(), middleware.QueryClient(c))
	spec := p.spec(res.Data)
	out := listing[E]{
		view:    table.Apply(res.Data, spec, params),
		filters: spec.Filters,
		loading: res.IsLoading,
		err:     res.Err,
	}
	if res.IsError && res.HasData() {
		out.placeholder = true
	}
	return out
}

func (p *entityPages[E, P, F, FP]) page(c *gin.Context, params table.Params) listData[E] {
	load := p.load
	if load == nil {
		load = p.clientSide
	}
	l := load(c, params)

	d := listData[E]{
		Base:        p.base(),
		Single:      p.single,
		Plural:      p.plural,
		View:        l.view,
		Filters:     l.filters,
		Sizes:       p.h.opts.PageSizes,
		Loading:     l.loading,
		Placeholder: l.placeholder,
		Can:         p.h.affordances(c, p.object),
	}
	if l.err != nil {
		d.Error = fmt.Sprintf("Failed to load %s.", p.plural)
		p.h.log.Debug().Err(l.err).Str("entity", p.object).Msg("list unavailable")
	}
	if p.names != nil {
		d.Names = p.names(c)
	}
	return d
}

func (p *entityPages[E, P, F, FP]) show(c *gin.Context, status int, d listData[E]) {
	p.h.render(c, status, p.template, p.title(), p.object, d)
}

func (p *entityPages[E, P, F, FP]) list(c *gin.Context) {
	p.show(c, http.StatusOK, p.page(c, p.h.params(c)))
}

func (p *entityPages[E, P, F, FP]) newDialog(c *gin.Context) {
	if err := p.h.authorize(c, p.object, authz.ActionEdit); err != nil {
		p.h.handleError(c, err)
		return
	}
	var dp dialog.Page[E]
	dp.Dialog.OpenCreate()
	p.openForm(c, http.StatusOK, p.h.params(c), dp, 0, nil)
}

func (p *entityPages[E, P, F, FP]) editDialog(c *gin.Context) {
	if err := p.h.authorize(c, p.object, authz.ActionEdit); err != nil {
		p.h.handleError(c, err)
		return
	}
	id, err := parseID(c)
	if err != nil {
		p.h.handleError(c, err)
		return
	}
	res := p.entity.Get(c.Request.Context(), middleware.QueryClient(c), id)
	if res.Err != nil || res.Data == nil {
		p.h.handleError(c, resultErr(res.Err))
		return
	}
	var dp dialog.Page[E]
	dp.Dialog.OpenEdit(*res.Data)
	p.openForm(c, http.StatusOK, p.h.params(c), dp, id, nil)
}

// openForm renders the list with the dialog's form. A nil f pre-fills from
// the dialog entity, or applies the create defaults.
func (p *entityPages[E, P, F, FP]) openForm(c *gin.Context, status int, params table.Params, dp dialog.Page[E], id int64, st *form.State) {
	if st == nil {
		f := p.newForm(dp.Dialog.Entity)
		st = form.NewState(p.single, id, FP(&f))
		p.loadRefs(c, st)
	}
	d := p.page(c, params)
	d.Form = st
	d.FormAction = p.base()
	if st.IsEdit() {
		d.FormAction = fmt.Sprintf("%s/%d", p.base(), id)
	}
	p.show(c, status, d)
}

func (p *entityPages[E, P, F, FP]) loadRefs(c *gin.Context, st *form.State) {
	if p.refs == nil {
		return
	}
	form.LoadRefs(c.Request.Context(), st, p.refs(c)...)
	if st.RefsError != nil {
		p.h.log.Debug().Err(st.RefsError).Str("entity", p.object).Msg("form references unavailable")
	}
}

func (p *entityPages[E, P, F, FP]) create(c *gin.Context) {
	p.submit(c, 0)
}

func (p *entityPages[E, P, F, FP]) update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		p.h.handleError(c, err)
		return
	}
	p.submit(c, id)
}

func (p *entityPages[E, P, F, FP]) submit(c *gin.Context, id int64) {
	if err := p.h.authorize(c, p.object, authz.ActionEdit); err != nil {
		p.h.handleError(c, err)
		return
	}
	params := p.returnParams(c)
	dp := dialog.Page[E]{ReturnTo: params.URL(p.base())}

	f := p.newForm(nil)
	fp := FP(&f)
	if e, ok := any(fp).(form.Editable); ok {
		e.SetEditing(id != 0)
	}
	st := form.NewState(p.single, id, fp)
	p.loadRefs(c, st)
	if err := c.ShouldBindWith(fp, binding.Form); err != nil {
		st.Failure = "Some fields could not be read. Check the values and try again."
		p.openForm(c, http.StatusBadRequest, params, dp, id, st)
		return
	}

	qc := middleware.QueryClient(c)
	var submitErr error
	upsert := func(ctx context.Context, req resource.UpsertRequest[P]) (*E, error) {
		out, err := p.entity.Upsert(ctx, qc, req)
		submitErr = err
		return out, err
	}
	onSuccess := func(*E) {
		p.h.setFlash(c, flashSuccess, fmt.Sprintf("%s %sd", titleWord(p.single), st.Mode), "")
	}
	onClose := func() {
		c.Redirect(http.StatusSeeOther, dp.CloseURL())
	}
	if form.Submit(c.Request.Context(), st, fp, upsert, onSuccess, onClose) {
		return
	}

	status := http.StatusUnprocessableEntity
	if submitErr != nil {
		status = statusFor(submitErr)
		p.h.log.Warn().Err(submitErr).Str("entity", p.object).Str("mode", st.Mode.String()).Msg("submit failed")
	}
	p.openForm(c, status, params, dp, id, st)
}

func (p *entityPages[E, P, F, FP]) confirmDelete(c *gin.Context) {
	if err := p.h.authorize(c, p.object, authz.ActionDelete); err != nil {
		p.h.handleError(c, err)
		return
	}
	id, err := parseID(c)
	if err != nil {
		p.h.handleError(c, err)
		return
	}
	res := p.entity.Get(c.Request.Context(), middleware.QueryClient(c), id)
	if res.Err != nil || res.Data == nil {
		p.h.handleError(c, resultErr(res.Err))
		return
	}

	flow := &table.DeleteFlow{}
	if err := flow.Request(id, p.label(*res.Data)); err != nil {
		p.h.handleError(c, err)
		return
	}
	p.showDelete(c, http.StatusOK, p.h.params(c), flow)
}

func (p *entityPages[E, P, F, FP]) delete(c *gin.Context) {
	if err := p.h.authorize(c, p.object, authz.ActionDelete); err != nil {
		p.h.handleError(c, err)
		return
	}
	id, err := parseID(c)
	if err != nil {
		p.h.handleError(c, err)
		return
	}
	params := p.returnParams(c)

	flow := &table.DeleteFlow{}
	label := strings.TrimSpace(c.PostForm("label"))
	if label == "" {
		label = fmt.Sprintf("#%d", id)
	}
	_ = flow.Request(id, label)

	qc := middleware.QueryClient(c)
	err = flow.Confirm(c.Request.Context(), p.single, func(ctx context.Context, id int64) error {
		return p.entity.Delete(ctx, qc, id)
	})
	if err != nil {
		p.h.log.Warn().Err(err).Str("entity", p.object).Int64("id", id).Msg("delete failed")
		p.showDelete(c, statusFor(err), params, flow)
		return
	}
	p.h.setFlash(c, flashSuccess, titleWord(p.single)+" deleted", "")
	c.Redirect(http.StatusSeeOther, params.URL(p.base()))
}

func (p *entityPages[E, P, F, FP]) showDelete(c *gin.Context, status int, params table.Params, flow *table.DeleteFlow) {
	d := p.page(c, params)
	d.Delete = flow
	d.DeleteAction = fmt.Sprintf("%s/%d/delete", p.base(), flow.TargetID)
	p.show(c, status, d)
}

// returnParams restores the table state posted back by a dialog. Only the
// query is taken from the client; the path is always the entity's own.
func (p *entityPages[E, P, F, FP]) returnParams(c *gin.Context) table.Params {
	q, err := url.ParseQuery(c.PostForm("return"))
	if err != nil {
		q = url.Values{}
	}
	return table.ParseParams(q, p.h.opts.PageSize, p.h.opts.PageSizes)
}

func resultErr(err error) error {
	if err == nil {
		return errNoData
	}
	return err
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// namesOf indexes rows by id.
func namesOf[T any](rows []T, id func(T) int64, name func(T) string) map[int64]string {
	m := make(map[int64]string, len(rows))
	for _, r := range rows {
		m[id(r)] = name(r)
	}
	return m
}

func listOrNil[T any](r query.Result[[]T]) []T {
	if r.HasData() {
		return r.Data
	}
	return nil
}

func (d listData[E]) NewURL() string {
	return d.View.Params.URL(d.Base + "/new")
}

func (d listData[E]) EditURL(id int64) string {
	return d.View.Params.URL(fmt.Sprintf("%s/%d/edit", d.Base, id))
}

func (d listData[E]) DeleteURL(id int64) string {
	return d.View.Params.URL(fmt.Sprintf("%s/%d/delete", d.Base, id))
}

// URLFor carries the current search and filter to another path, such as an
// export.
func (d listData[E]) URLFor(path string) string {
	p := d.View.Params
	p.Page = 0
	return p.URL(path)
}
