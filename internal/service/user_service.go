package service

import (
	"context"

	"github.com/nurpe/contracts-admin/internal/model"
)

type UserService struct {
	crud crud[model.User, model.UserPayload]
}

func NewUserService(api API) *UserService {
	return &UserService{crud: crud[model.User, model.UserPayload]{api: api, base: "/users"}}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.crud.list(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.crud.get(ctx, id)
}

func (s *UserService) Create(ctx context.Context, payload model.UserPayload) (*model.User, error) {
	return s.crud.create(ctx, payload)
}

// Update leaves the password untouched when payload.Password is empty.
func (s *UserService) Update(ctx context.Context, id int64, payload model.UserPayload) (*model.User, error) {
	return s.crud.update(ctx, id, payload)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.crud.delete(ctx, id)
}

type RoleService struct {
	api API
}

func NewRoleService(api API) *RoleService {
	return &RoleService{api: api}
}

func (s *RoleService) List(ctx context.Context) ([]model.Role, error) {
	var out []model.Role
	if err := s.api.Get(ctx, "/roles", nil, &out); err != nil {
		return nil, translate(err)
	}
	return out, nil
}
