package apiclient

import (
	"context"
	"net/http"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// AuthResult is the backend's answer to login and register.
type AuthResult struct {
	AccessToken string      `json:"accessToken"`
	User        models.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, "auth.login", http.MethodPost, "/auth/login", in, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, "auth.register", http.MethodPost, "/auth/register", in, &out)
	return out, err
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	in := map[string]string{"email": email}
	return c.do(ctx, "auth.forgot_password", http.MethodPost, "/auth/forgot-password", in, nil)
}

type ResetPasswordInput struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (c *Client) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	return c.do(ctx, "auth.reset_password", http.MethodPost, "/auth/reset-password", in, nil)
}

type VerifyAccountInput struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (c *Client) VerifyAccount(ctx context.Context, in VerifyAccountInput) error {
	return c.do(ctx, "auth.verify_account", http.MethodPost, "/auth/verify-account", in, nil)
}
