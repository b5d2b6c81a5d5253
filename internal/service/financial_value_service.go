package service

import (
	"context"
	"fmt"

	"github.com/nurpe/contracts-admin/internal/model"
)

type FinancialValueService struct {
	crud crud[model.FinancialValue, model.FinancialValuePayload]
}

func NewFinancialValueService(api API) *FinancialValueService {
	return &FinancialValueService{crud: crud[model.FinancialValue, model.FinancialValuePayload]{api: api, base: "/financial-values"}}
}

func (s *FinancialValueService) List(ctx context.Context) ([]model.FinancialValue, error) {
	return s.crud.list(ctx)
}

func (s *FinancialValueService) Get(ctx context.Context, id int64) (*model.FinancialValue, error) {
	return s.crud.get(ctx, id)
}

func (s *FinancialValueService) Create(ctx context.Context, payload model.FinancialValuePayload) (*model.FinancialValue, error) {
	return s.crud.create(ctx, payload)
}

func (s *FinancialValueService) Update(ctx context.Context, id int64, payload model.FinancialValuePayload) (*model.FinancialValue, error) {
	return s.crud.update(ctx, id, payload)
}

func (s *FinancialValueService) Delete(ctx context.Context, id int64) error {
	return s.crud.delete(ctx, id)
}

func (s *FinancialValueService) ByContract(ctx context.Context, contractID int64) ([]model.FinancialValue, error) {
	var out []model.FinancialValue
	if err := s.crud.api.Get(ctx, fmt.Sprintf("/financial-values/by-contract/%d", contractID), nil, &out); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// HistoryService reads the append-only contract audit trail.
type HistoryService struct {
	api API
}

func NewHistoryService(api API) *HistoryService {
	return &HistoryService{api: api}
}

func (s *HistoryService) ByContract(ctx context.Context, contractID int64) ([]model.ContractHistory, error) {
	var out []model.ContractHistory
	if err := s.api.Get(ctx, fmt.Sprintf("/contract-history/contract/%d", contractID), nil, &out); err != nil {
		return nil, translate(err)
	}
	return out, nil
}
