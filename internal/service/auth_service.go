package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/nurpe/contracts-admin/internal/apiclient"
	"github.com/nurpe/contracts-admin/internal/model"
)

type AuthService struct {
	api API
}

func NewAuthService(api API) *AuthService {
	return &AuthService{api: api}
}

// Login exchanges credentials for a token and resolves the profile through
// /auth/me. Builds without /auth/me fall back to the user returned on login.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	var resp model.AuthResponse
	req := model.LoginRequest{Username: strings.TrimSpace(username), Password: password}
	if err := s.api.Post(ctx, "/auth/login", req, &resp); err != nil {
		return "", nil, translate(err)
	}
	if resp.Token == "" {
		return "", nil, ErrInvalidInput
	}

	profile, err := s.Me(ctx, resp.Token)
	if err != nil {
		if resp.User != nil && apiclient.StatusOf(err) == http.StatusNotFound {
			return resp.Token, resp.User, nil
		}
		return "", nil, err
	}
	return resp.Token, profile, nil
}

func (s *AuthService) Me(ctx context.Context, token string) (*model.User, error) {
	var out model.User
	ctx = apiclient.WithCredentials(ctx, staticToken(token))
	if err := s.api.Get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// staticToken is never persisted, so a rejection has nothing to invalidate.
type staticToken string

func (t staticToken) Token() string { return string(t) }
func (t staticToken) Invalidate()   {}
