package domain

import "context"

// Gateway ports, one per routine. The HTTP client in internal/gateway
// implements all of them; tests substitute fakes per routine.

type AuthGateway interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

type CatalogGateway interface {
	GetCategories(ctx context.Context) ([]Category, error)
	// GetProductsByCategory pages from zero on the wire.
	GetProductsByCategory(ctx context.Context, categoryID int64, pageZeroBased int) (*ProductBatch, error)
	SearchProducts(ctx context.Context, req SearchRequest) (*ProductBatch, error)
}

type ForgotPasswordGateway interface {
	GetOtp(ctx context.Context, req ForgotPasswordRequest) (*StatusResponse, error)
	VerifyOtp(ctx context.Context, req OtpRequest) (*StatusResponse, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (*StatusResponse, error)
}

type AccountGateway interface {
	GetProfile(ctx context.Context) (*User, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) (*StatusResponse, error)
	SendUpgradeRequest(ctx context.Context) (*StatusResponse, error)
	UpgradeUser(ctx context.Context, userID int64) (*RoleChanged, error)
	DowngradeUser(ctx context.Context, userID int64) (*RoleChanged, error)
	GetSellerList(ctx context.Context, pageZeroBased int) (*UserBatch, error)
	GetUpgradeList(ctx context.Context, pageZeroBased int) (*UpgradeBatch, error)
	WatchProduct(ctx context.Context, productID int64) error
	GetWatchList(ctx context.Context, pageZeroBased int) (*ProductBatch, error)
}
