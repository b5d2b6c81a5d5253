package service

import (
	"context"

	"github.com/nurpe/contracts-admin/internal/model"
)

type BusinessAreaService struct {
	crud crud[model.BusinessArea, model.BusinessAreaPayload]
}

func NewBusinessAreaService(api API) *BusinessAreaService {
	return &BusinessAreaService{crud: crud[model.BusinessArea, model.BusinessAreaPayload]{api: api, base: "/business-areas"}}
}

func (s *BusinessAreaService) List(ctx context.Context) ([]model.BusinessArea, error) {
	return s.crud.list(ctx)
}

func (s *BusinessAreaService) Get(ctx context.Context, id int64) (*model.BusinessArea, error) {
	return s.crud.get(ctx, id)
}

func (s *BusinessAreaService) Create(ctx context.Context, payload model.BusinessAreaPayload) (*model.BusinessArea, error) {
	return s.crud.create(ctx, payload)
}

func (s *BusinessAreaService) Update(ctx context.Context, id int64, payload model.BusinessAreaPayload) (*model.BusinessArea, error) {
	return s.crud.update(ctx, id, payload)
}

func (s *BusinessAreaService) Delete(ctx context.Context, id int64) error {
	return s.crud.delete(ctx, id)
}
