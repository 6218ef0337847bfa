package models

// Role gates which route subtree a session may reach.
type Role string

const (
	RoleUser   Role = "USER"
	RoleVendor Role = "VENDOR"
	RoleAdmin  Role = "ADMIN"
)

// HomePath is where a session of this role belongs when it wanders into a
// subtree it is not allowed in. Unknown roles fall back to the storefront.
func (r Role) HomePath() string {
	switch r {
	case RoleUser:
		return "/"
	case RoleVendor:
		return "/vendor"
	case RoleAdmin:
		return "/admin/dashboard"
	default:
		return "/"
	}
}

// User is the identity half of a session, persisted separately from the token.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Session is the client's record of an authenticated identity plus the opaque
// bearer token the backend issued for it. Role is present iff Token is.
type Session struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Token  string `json:"token"`
}

func (s *Session) User() User {
	return User{ID: s.UserID, Name: s.Name, Email: s.Email, Role: s.Role}
}
