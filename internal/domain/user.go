package domain

type Role string

const (
	RoleBidder Role = "BIDDER"
	RoleSeller Role = "SELLER"
	RoleAdmin  Role = "ADMIN"
)

type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Role        Role   `json:"role,omitempty"`
	Rating      int    `json:"rating,omitempty"`
}

// UpgradeRequest is a pending bidder-to-seller promotion request.
type UpgradeRequest struct {
	ID     int64 `json:"id"`
	Bidder User  `json:"bidder"`
}
