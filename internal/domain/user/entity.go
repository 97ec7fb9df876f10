package user

import "time"

// Role is the access level attached to a user account.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

type User struct {
	ID             string
	FullName       string
	Email          string
	NIKKtp         *string
	PasswordHash   string
	ProfilePicture *string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Identity is the authenticated caller, extracted from JWT claims at the
// boundary and passed explicitly into services.
type Identity struct {
	UserID string
	Role   Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
