package http

import (
	"github.com/gin-gonic/gin"

	"github.com/nurpe/contracts-admin/internal/http/middleware"
	"github.com/nurpe/contracts-admin/internal/model"
	"github.com/nurpe/contracts-admin/internal/resource"
	"github.com/nurpe/contracts-admin/internal/table"
)

// exportFinancialValues builds the workbook from every row matching the
// current table search and filter.
func (h *Handler) exportFinancialValues(c *gin.Context) {
	params := h.params(c)
	res := h.res.FinancialValues.List(c.Request.Context(), middleware.QueryClient(c))
	if res.Err != nil {
		h.handleError(c, res.Err)
		return
	}
	if middleware.Rejected(c) {
		return
	}

	rows := h.withNames(c, res.Data)
	content, err := h.excel.Generate(model.FinancialReport{
		GeneratedAt: h.now(),
		FilterLabel: table.FinancialValueSpec.FilterLabel(params),
		Values:      table.Filter(rows, table.FinancialValueSpec, params),
	})
	if err != nil {
		h.exportFailed(c, "/"+resource.KeyFinancialValues, params, err)
		return
	}
	sendFile(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "financial-values.xlsx", content)
}

// withNames fills the display fields the backend did not join.
func (h *Handler) withNames(c *gin.Context, rows []model.FinancialValue) []model.FinancialValue {
	var areas, contracts map[int64]string
	out := make([]model.FinancialValue, len(rows))
	for i, v := range rows {
		if v.AreaName == "" {
			if areas == nil {
				areas = areaNames(listOrNil(h.res.BusinessAreas.List(c.Request.Context(), middleware.QueryClient(c))))
			}
			v.AreaName = areas[v.BusinessAreaID]
		}
		if v.CustomerName == "" {
			if contracts == nil {
				list := listOrNil(h.res.Contracts.List(c.Request.Context(), middleware.QueryClient(c)))
				contracts = namesOf(list, func(c model.Contract) int64 { return c.ID }, func(c model.Contract) string { return c.CustomerName })
			}
			v.CustomerName = contracts[v.ContractID]
		}
		out[i] = v
	}
	return out
}
