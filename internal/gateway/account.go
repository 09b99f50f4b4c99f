package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/daoleviethoang/friendly-frontend/internal/domain"
)

// Authenticated calls. Every method here follows the token lifecycle
// contract: bearer header read from the store at call time, rotated token
// written back inside do before the method returns.

func (c *Client) GetProfile(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/user", nil, nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) (*domain.StatusResponse, error) {
	var res domain.StatusResponse
	if err := c.do(ctx, http.MethodPut, "/user/change-password", nil, req, &res, true); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) SendUpgradeRequest(ctx context.Context) (*domain.StatusResponse, error) {
	var res domain.StatusResponse
	if err := c.do(ctx, http.MethodPost, "/bidder", nil, nil, &res, true); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpgradeUser promotes a bidder to seller. The server also answers PATCH
// on this route; PUT is the authoritative verb.
func (c *Client) UpgradeUser(ctx context.Context, userID int64) (*domain.RoleChanged, error) {
	var res domain.StatusResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/bidder/%d", userID), nil, nil, &res, true); err != nil {
		return nil, err
	}
	return &domain.RoleChanged{UserID: userID, Role: domain.RoleSeller, Message: res.Message}, nil
}

func (c *Client) DowngradeUser(ctx context.Context, userID int64) (*domain.RoleChanged, error) {
	var res domain.StatusResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/seller/%d", userID), nil, nil, &res, true); err != nil {
		return nil, err
	}
	return &domain.RoleChanged{UserID: userID, Role: domain.RoleBidder, Message: res.Message}, nil
}

func (c *Client) GetSellerList(ctx context.Context, pageZeroBased int) (*domain.UserBatch, error) {
	var page pagedContent[domain.User]
	if err := c.do(ctx, http.MethodGet, "/admin/seller", pageQuery(pageZeroBased, c.pageSize), nil, &page, true); err != nil {
		return nil, err
	}
	return &domain.UserBatch{Users: page.Content, TotalPages: page.TotalPages}, nil
}

func (c *Client) GetUpgradeList(ctx context.Context, pageZeroBased int) (*domain.UpgradeBatch, error) {
	var page pagedContent[domain.UpgradeRequest]
	if err := c.do(ctx, http.MethodGet, "/admin/bidder", pageQuery(pageZeroBased, c.pageSize), nil, &page, true); err != nil {
		return nil, err
	}
	return &domain.UpgradeBatch{Requests: page.Content, TotalPages: page.TotalPages}, nil
}

func (c *Client) WatchProduct(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/user/watch-list/product/%d", productID)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil, true)
}

func (c *Client) GetWatchList(ctx context.Context, pageZeroBased int) (*domain.ProductBatch, error) {
	var page pagedContent[domain.Product]
	if err := c.do(ctx, http.MethodGet, "/user/watch-list", pageQuery(pageZeroBased, c.pageSize), nil, &page, true); err != nil {
		return nil, err
	}
	return &domain.ProductBatch{Products: page.Content, TotalPages: page.TotalPages}, nil
}
