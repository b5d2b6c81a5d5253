package http

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/nurpe/contracts-admin/internal/apiclient"
	"github.com/nurpe/contracts-admin/internal/form"
	"github.com/nurpe/contracts-admin/internal/http/middleware"
	"github.com/nurpe/contracts-admin/internal/model"
	"github.com/nurpe/contracts-admin/internal/query"
	"github.com/nurpe/contracts-admin/internal/resource"
	"github.com/nurpe/contracts-admin/internal/service"
	"github.com/nurpe/contracts-admin/internal/table"
)

func (h *Handler) contractPages() *entityPages[model.Contract, model.ContractPayload, form.ContractForm, *form.ContractForm] {
	return &entityPages[model.Contract, model.ContractPayload, form.ContractForm, *form.ContractForm]{
		h:        h,
		single:   "contract",
		plural:   "contracts",
		object:   resource.KeyContracts,
		template: "contracts",
		entity:   h.res.Contracts.Entity,
		spec:     func([]model.Contract) table.Spec[model.Contract] { return table.ContractSpec },
		newForm:  form.NewContractForm,
		label: func(c model.Contract) string {
			return strings.TrimSpace(c.ContractNumber + " " + c.CustomerName)
		},
		refs: func(c *gin.Context) []form.RefLoader {
			qc := middleware.QueryClient(c)
			return []form.RefLoader{form.Areas(h.res, qc), form.Managers(h.res, qc)}
		},
		names: func(c *gin.Context) names {
			ctx, qc := c.Request.Context(), middleware.QueryClient(c)
			return names{
				Areas:    areaNames(listOrNil(h.res.BusinessAreas.List(ctx, qc))),
				Managers: managerNames(listOrNil(h.res.Managers.List(ctx, qc))),
			}
		},
		load: h.searchContracts,
	}
}

func searchParams(p table.Params) service.SearchParams {
	return service.SearchParams{Page: p.Page, Size: p.Size, Query: p.Search, Status: p.Filter}
}

// searchContracts pages on the backend. The unfiltered total comes from the
// cached dashboard counts.
func (h *Handler) searchContracts(c *gin.Context, params table.Params) listing[model.Contract] {
	ctx, qc := c.Request.Context(), middleware.QueryClient(c)
	res := h.res.Contracts.Search(ctx, qc, searchParams(params))

	overall := -1
	if stats := h.res.Contracts.Stats(ctx, qc); stats.HasData() && stats.Data != nil {
		overall = int(stats.Data.Total)
	}
	return listing[model.Contract]{
		view:        table.FromPage(res.Data, params, overall),
		filters:     table.ContractSpec.Filters,
		loading:     res.IsLoading,
		err:         res.Err,
		placeholder: res.IsPlaceholder,
	}
}

type detailSection[T any] struct {
	Data  T
	Error string
}

type contractDetail struct {
	Contract    model.Contract
	ManagerName string
	AreaName    string
	Values      detailSection[[]model.FinancialValue]
	History     detailSection[[]model.ContractHistory]
	Can         struct{ Edit, Delete bool }
}

// loadContractDetail fetches the contract and then its sections in
// parallel; a failed section only blanks itself.
func (h *Handler) loadContractDetail(c *gin.Context, id int64) (*contractDetail, error) {
	ctx, qc := c.Request.Context(), middleware.QueryClient(c)
	res := h.res.Contracts.Get(ctx, qc, id)
	if res.Err != nil || res.Data == nil {
		return nil, resultErr(res.Err)
	}
	d := &contractDetail{Contract: *res.Data}

	var g errgroup.Group
	g.Go(func() error {
		d.ManagerName = h.managerName(ctx, qc, d.Contract)
		return nil
	})
	g.Go(func() error {
		d.AreaName = h.areaName(ctx, qc, d.Contract)
		return nil
	})
	g.Go(func() error {
		r := h.res.FinancialValues.ByContract(ctx, qc, id)
		d.Values.Data = listOrNil(r)
		if r.Err != nil {
			d.Values.Error = "Failed to load financial values."
		}
		return nil
	})
	g.Go(func() error {
		r := h.res.History(ctx, qc, id)
		d.History.Data = listOrNil(r)
		if r.Err != nil {
			d.History.Error = "Failed to load history."
		}
		return nil
	})
	_ = g.Wait()
	return d, nil
}

func (h *Handler) managerName(ctx context.Context, qc *query.Client, contract model.Contract) string {
	if contract.Manager != nil {
		return contract.Manager.FullName()
	}
	if contract.ManagerID == 0 {
		return ""
	}
	rows := listOrNil(h.res.Managers.List(ctx, qc))
	return managerNames(rows)[contract.ManagerID]
}

func (h *Handler) areaName(ctx context.Context, qc *query.Client, contract model.Contract) string {
	if contract.Area != nil {
		return contract.Area.Name
	}
	if contract.AreaID == 0 {
		return ""
	}
	rows := listOrNil(h.res.BusinessAreas.List(ctx, qc))
	return areaNames(rows)[contract.AreaID]
}

func (h *Handler) contractDetail(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	d, err := h.loadContractDetail(c, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	can := h.affordances(c, resource.KeyContracts)
	d.Can.Edit, d.Can.Delete = can.Edit, can.Delete
	h.render(c, http.StatusOK, "contract_detail", "Contract "+d.Contract.ContractNumber, resource.KeyContracts, d)
}

func (h *Handler) contractSheet(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	d, err := h.loadContractDetail(c, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if middleware.Rejected(c) {
		return
	}

	content, err := h.pdf.Generate(model.ContractSheet{
		GeneratedAt: h.now(),
		Contract:    d.Contract,
		ManagerName: d.ManagerName,
		AreaName:    d.AreaName,
		Values:      d.Values.Data,
		History:     d.History.Data,
	})
	if err != nil {
		h.log.Error().Err(err).Int64("contract_id", id).Msg("generate contract sheet failed")
		c.Status(http.StatusInternalServerError)
		return
	}
	sendFile(c, "application/pdf", fmt.Sprintf("contract-%s.pdf", fileSafe(d.Contract.ContractNumber, id)), content)
}

func (h *Handler) exportContractsExcel(c *gin.Context) {
	h.exportContracts(c, h.res.Contracts.ExportExcel)
}

func (h *Handler) exportContractsPDF(c *gin.Context) {
	h.exportContracts(c, h.res.Contracts.ExportPDF)
}

func (h *Handler) exportContracts(c *gin.Context, export func(context.Context, service.SearchParams) (*apiclient.Download, error)) {
	params := h.params(c)

	dl, err := export(c.Request.Context(), searchParams(params))
	if err != nil {
		h.exportFailed(c, "/"+resource.KeyContracts, params, err)
		return
	}
	contentType := dl.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	sendFile(c, contentType, dl.FileName, dl.Content)
}

func sendFile(c *gin.Context, contentType, name string, content []byte) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": name})
	if disposition == "" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, contentType, content)
}

// fileSafe keeps letters, digits and hyphens, falling back to the id.
func fileSafe(s string, id int64) string {
	var b strings.Builder
	for _, r := range s {
		if r == '-' || (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return fmt.Sprint(id)
	}
	return b.String()
}
