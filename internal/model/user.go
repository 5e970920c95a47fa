package model

type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

type User struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email,omitempty"`
	Role  UserRole `json:"role,omitempty"`
}

type Profile struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	ImageURL string   `json:"imageUrl,omitempty"`
}

type RegisterRequest struct {
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the token contract shared by register and login.
type AuthResponse struct {
	Token string `json:"token"`
}

// SessionClaims is the identity decoded from the bearer token payload.
// Claims are never verified here; the API stays the sole authority and
// rejects stale or forged tokens on every request.
type SessionClaims struct {
	UserID int64
	Name   string
	Role   UserRole
}

func (c *SessionClaims) IsAdmin() bool {
	return c != nil && c.Role == UserRoleAdmin
}
