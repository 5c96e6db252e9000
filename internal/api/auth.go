package api

import (
	"context"

	"github.com/PhucLe22/lms-client/internal/models"
)

// AuthService wraps the authentication endpoints.
type AuthService struct {
	client *Client
}

// RegisterRequest creates a new student account.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := s.client.do(ctx, "POST", "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := s.client.do(ctx, "POST", "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the profile for the current bearer token.
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := s.client.do(ctx, "GET", "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return s.client.do(ctx, "POST", "/auth/forgot-password", body, nil)
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "newPassword": newPassword}
	return s.client.do(ctx, "POST", "/auth/reset-password", body, nil)
}
