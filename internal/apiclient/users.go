package apiclient

import (
	"context"
	"net/http"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
)

func (c *Client) Me(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.do(ctx, "users.me", http.MethodGet, "/users/me", nil, &out)
	return out, err
}

type UpdateProfileInput struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

func (c *Client) UpdateMe(ctx context.Context, in UpdateProfileInput) (models.User, error) {
	var out models.User
	err := c.do(ctx, "users.update_me", http.MethodPut, "/users/me", in, &out)
	return out, err
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := c.do(ctx, "users.list", http.MethodGet, "/users", nil, &out)
	return out, err
}

type CreateUserInput struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Phone    string          `json:"phone,omitempty"`
	Role     models.UserRole `json:"role"`
}

func (c *Client) CreateUser(ctx context.Context, in CreateUserInput) (models.User, error) {
	var out models.User
	err := c.do(ctx, "users.create", http.MethodPost, "/users", in, &out)
	return out, err
}
