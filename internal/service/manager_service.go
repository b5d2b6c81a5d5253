package service

import (
	"context"

	"github.com/nurpe/contracts-admin/internal/model"
)

type ManagerService struct {
	crud crud[model.Manager, model.ManagerPayload]
}

func NewManagerService(api API) *ManagerService {
	return &ManagerService{crud: crud[model.Manager, model.ManagerPayload]{api: api, base: "/managers"}}
}

func (s *ManagerService) List(ctx context.Context) ([]model.Manager, error) {
	return s.crud.list(ctx)
}

func (s *ManagerService) Get(ctx context.Context, id int64) (*model.Manager, error) {
	return s.crud.get(ctx, id)
}

func (s *ManagerService) Create(ctx context.Context, payload model.ManagerPayload) (*model.Manager, error) {
	return s.crud.create(ctx, payload)
}

func (s *ManagerService) Update(ctx context.Context, id int64, payload model.ManagerPayload) (*model.Manager, error) {
	return s.crud.update(ctx, id, payload)
}

func (s *ManagerService) Delete(ctx context.Context, id int64) error {
	return s.crud.delete(ctx, id)
}
