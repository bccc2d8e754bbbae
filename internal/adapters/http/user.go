package http

import (
	"context"

	"github.com/comixed/comixed-client/internal/domain"
)

const (
	userPath        = "/api/user"
	preferencesPath = "/api/user/preferences"
)

// UserService loads the current user.
type UserService struct {
	client *Client
}

// NewUserService creates a UserService.
func NewUserService(client *Client) *UserService {
	return &UserService{client: client}
}

// LoadCurrentUser returns the authenticated user.
func (s *UserService) LoadCurrentUser(ctx context.Context) (domain.User, error) {
	var u domain.User
	err := s.client.Get(ctx, userPath, &u)
	return u, err
}

// SaveUserPreference stores one preference and returns the updated user.
func (s *UserService) SaveUserPreference(ctx context.Context, name, value string) (domain.User, error) {
	var u domain.User
	err := s.client.Post(ctx, preferencesPath, domain.Preference{Name: name, Value: value}, &u)
	return u, err
}
