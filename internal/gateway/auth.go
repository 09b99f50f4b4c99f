package gateway

import (
	"context"
	"net/http"

	"github.com/daoleviethoang/friendly-frontend/internal/domain"
)

func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	var res domain.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &res, false); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetOtp(ctx context.Context, req domain.ForgotPasswordRequest) (*domain.StatusResponse, error) {
	var res domain.StatusResponse
	if err := c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, req, &res, false); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) VerifyOtp(ctx context.Context, req domain.OtpRequest) (*domain.StatusResponse, error) {
	var res domain.StatusResponse
	if err := c.do(ctx, http.MethodPost, "/auth/verify", nil, req, &res, false); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) (*domain.StatusResponse, error) {
	var res domain.StatusResponse
	if err := c.do(ctx, http.MethodPost, "/auth/reset-password", nil, req, &res, false); err != nil {
		return nil, err
	}
	return &res, nil
}
