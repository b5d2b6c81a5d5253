package resource

import (
	"context"

	"github.com/nurpe/contracts-admin/internal/model"
	"github.com/nurpe/contracts-admin/internal/query"
	"github.com/nurpe/contracts-admin/internal/service"
)

const (
	KeyContracts       = "contracts"
	KeyBusinessAreas   = "business-areas"
	KeyManagers        = "managers"
	KeyUsers           = "users"
	KeyRoles           = "roles"
	KeyFinancialValues = "financial-values"
	KeyHistory         = "contract-history"
)

type FinancialValues struct {
	*Entity[model.FinancialValue, model.FinancialValuePayload]
	svc *service.FinancialValueService
}

func (r *FinancialValues) ByContract(ctx context.Context, c *query.Client, contractID int64) query.Result[[]model.FinancialValue] {
	return query.Fetch(ctx, c, query.Query[[]model.FinancialValue]{
		Key: r.Key().Append("by-contract", contractID),
		Fn: func(ctx context.Context) ([]model.FinancialValue, error) {
			return r.svc.ByContract(ctx, contractID)
		},
		StaleTime: r.stale,
	})
}

type Resources struct {
	Contracts       *Contracts
	BusinessAreas   *Entity[model.BusinessArea, model.BusinessAreaPayload]
	Managers        *Entity[model.Manager, model.ManagerPayload]
	Users           *Entity[model.User, model.UserPayload]
	FinancialValues *FinancialValues

	roles   *service.RoleService
	history *service.HistoryService
	policy  Policy
}

func New(api service.API, policy Policy) *Resources {
	contracts := service.NewContractService(api)
	financial := service.NewFinancialValueService(api)

	// contract writes change history and the dashboards; area and manager
	// renames change the names joined into contract rows
	return &Resources{
		Contracts: &Contracts{
			Entity:    NewEntity[model.Contract, model.ContractPayload](KeyContracts, contracts, policy.List, query.K(KeyHistory), query.K(KeyFinancialValues)),
			svc:       contracts,
			reference: policy.Reference,
			list:      policy.List,
		},
		BusinessAreas: NewEntity[model.BusinessArea, model.BusinessAreaPayload](KeyBusinessAreas, service.NewBusinessAreaService(api), policy.Reference, query.K(KeyContracts)),
		Managers:      NewEntity[model.Manager, model.ManagerPayload](KeyManagers, service.NewManagerService(api), policy.Reference, query.K(KeyContracts)),
		Users:         NewEntity[model.User, model.UserPayload](KeyUsers, service.NewUserService(api), policy.List),
		FinancialValues: &FinancialValues{
			Entity: NewEntity[model.FinancialValue, model.FinancialValuePayload](KeyFinancialValues, financial, policy.List),
			svc:    financial,
		},
		roles:   service.NewRoleService(api),
		history: service.NewHistoryService(api),
		policy:  policy,
	}
}

func (r *Resources) Roles(ctx context.Context, c *query.Client) query.Result[[]model.Role] {
	return query.Fetch(ctx, c, query.Query[[]model.Role]{
		Key:       query.K(KeyRoles),
		Fn:        r.roles.List,
		StaleTime: r.policy.Reference,
	})
}

func (r *Resources) History(ctx context.Context, c *query.Client, contractID int64) query.Result[[]model.ContractHistory] {
	return query.Fetch(ctx, c, query.Query[[]model.ContractHistory]{
		Key: query.K(KeyHistory, contractID),
		Fn: func(ctx context.Context) ([]model.ContractHistory, error) {
			return r.history.ByContract(ctx, contractID)
		},
		StaleTime: r.policy.List,
	})
}
