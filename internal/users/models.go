package users

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleBuyer   Role = "buyer"
)

func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleManager || r == RoleBuyer
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusSuspended Status = "suspended"
)

type User struct {
	ID              string    `json:"_id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	PhotoURL        string    `json:"photoURL"`
	Role            Role      `json:"role"`
	Status          Status    `json:"status"`
	SuspendedReason string    `json:"suspendedReason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}
