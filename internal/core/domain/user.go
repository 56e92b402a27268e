package domain

import "time"

// Role is the back-office role assigned to a user account.
// The wire format is numeric, matching the server's enum.
type Role int

const (
	RoleAdmin Role = 1
	RoleAgent Role = 2
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleAgent:
		return "agent"
	default:
		return "unknown"
	}
}

// Valid reports whether r is a role the server can issue.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleAgent
}

// UserProfile is the identity snapshot cached at login. It is immutable:
// replaced wholesale on login, never partially patched.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
