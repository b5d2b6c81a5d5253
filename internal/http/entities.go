package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/contracts-admin/internal/form"
	"github.com/nurpe/contracts-admin/internal/http/middleware"
	"github.com/nurpe/contracts-admin/internal/model"
	"github.com/nurpe/contracts-admin/internal/resource"
	"github.com/nurpe/contracts-admin/internal/table"
)

func (h *Handler) businessAreaPages() *entityPages[model.BusinessArea, model.BusinessAreaPayload, form.BusinessAreaForm, *form.BusinessAreaForm] {
	return &entityPages[model.BusinessArea, model.BusinessAreaPayload, form.BusinessAreaForm, *form.BusinessAreaForm]{
		h:        h,
		single:   "business area",
		plural:   "business areas",
		object:   resource.KeyBusinessAreas,
		template: "business_areas",
		entity:   h.res.BusinessAreas,
		spec:     func([]model.BusinessArea) table.Spec[model.BusinessArea] { return table.BusinessAreaSpec },
		newForm:  form.NewBusinessAreaForm,
		label:    func(a model.BusinessArea) string { return a.Name },
	}
}

func (h *Handler) managerPages() *entityPages[model.Manager, model.ManagerPayload, form.ManagerForm, *form.ManagerForm] {
	return &entityPages[model.Manager, model.ManagerPayload, form.ManagerForm, *form.ManagerForm]{
		h:        h,
		single:   "manager",
		plural:   "managers",
		object:   resource.KeyManagers,
		template: "managers",
		entity:   h.res.Managers,
		spec:     table.ManagerSpec,
		newForm:  form.NewManagerForm,
		label:    func(m model.Manager) string { return m.FullName() },
	}
}

func (h *Handler) userPages() *entityPages[model.User, model.UserPayload, form.UserForm, *form.UserForm] {
	return &entityPages[model.User, model.UserPayload, form.UserForm, *form.UserForm]{
		h:        h,
		single:   "user",
		plural:   "users",
		object:   resource.KeyUsers,
		template: "users",
		entity:   h.res.Users,
		spec:     func([]model.User) table.Spec[model.User] { return table.UserSpec },
		newForm:  form.NewUserForm,
		label:    func(u model.User) string { return u.Username },
		refs: func(c *gin.Context) []form.RefLoader {
			qc := middleware.QueryClient(c)
			return []form.RefLoader{form.Managers(h.res, qc), form.Roles(h.res, qc)}
		},
		names: func(c *gin.Context) names {
			ctx, qc := c.Request.Context(), middleware.QueryClient(c)
			return names{
				Managers: managerNames(listOrNil(h.res.Managers.List(ctx, qc))),
				Roles:    namesOf(listOrNil(h.res.Roles(ctx, qc)), func(r model.Role) int64 { return r.ID }, func(r model.Role) string { return r.Name }),
			}
		},
	}
}

func (h *Handler) financialValuePages() *entityPages[model.FinancialValue, model.FinancialValuePayload, form.FinancialValueForm, *form.FinancialValueForm] {
	return &entityPages[model.FinancialValue, model.FinancialValuePayload, form.FinancialValueForm, *form.FinancialValueForm]{
		h:        h,
		single:   "financial value",
		plural:   "financial values",
		object:   resource.KeyFinancialValues,
		template: "financial_values",
		entity:   h.res.FinancialValues.Entity,
		spec:     func([]model.FinancialValue) table.Spec[model.FinancialValue] { return table.FinancialValueSpec },
		newForm: func(v *model.FinancialValue) form.FinancialValueForm {
			return form.NewFinancialValueForm(v, h.now())
		},
		label: func(v model.FinancialValue) string {
			return fmt.Sprintf("%s %d-%02d", v.DisplayTypeName(), v.Year, v.Month)
		},
		refs: func(c *gin.Context) []form.RefLoader {
			qc := middleware.QueryClient(c)
			return []form.RefLoader{form.Areas(h.res, qc), form.Contracts(h.res, qc), form.FinancialTypes()}
		},
		names: func(c *gin.Context) names {
			ctx, qc := c.Request.Context(), middleware.QueryClient(c)
			return names{
				Areas:     areaNames(listOrNil(h.res.BusinessAreas.List(ctx, qc))),
				Contracts: contractNames(listOrNil(h.res.Contracts.List(ctx, qc))),
			}
		},
	}
}

func areaNames(rows []model.BusinessArea) map[int64]string {
	return namesOf(rows, func(a model.BusinessArea) int64 { return a.ID }, func(a model.BusinessArea) string { return a.Name })
}

func managerNames(rows []model.Manager) map[int64]string {
	return namesOf(rows, func(m model.Manager) int64 { return m.ID }, model.Manager.FullName)
}

func contractNames(rows []model.Contract) map[int64]string {
	return namesOf(rows, func(c model.Contract) int64 { return c.ID }, func(c model.Contract) string {
		return c.ContractNumber + " " + c.CustomerName
	})
}
