package domain

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// RoleChangeRequest promotes or demotes a user; the intent kind carries
// the direction.
type RoleChangeRequest struct {
	UserID int64 `json:"userId" validate:"required"`
}

type RoleChanged struct {
	UserID  int64  `json:"userId"`
	Role    Role   `json:"role"`
	Message string `json:"message"`
}

type PageRequest struct {
	CurrentPage int `json:"currentPage" validate:"min=1"`
}

type WatchProductRequest struct {
	ProductID int64 `json:"productId" validate:"required"`
}

// UserBatch and UpgradeBatch are raw remote shapes, pre paging shift.
type UserBatch struct {
	Users      []User `json:"users"`
	TotalPages int    `json:"totalPages"`
}

type UpgradeBatch struct {
	Requests   []UpgradeRequest `json:"requests"`
	TotalPages int              `json:"totalPages"`
}
