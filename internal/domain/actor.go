package domain

// Role marketplace role of a profile
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
)

// ParseRole converts a raw string into a known role
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleClient, RoleProvider:
		return Role(s), true
	}
	return "", false
}

// Actor the authenticated caller of an operation
type Actor struct {
	ProfileID int64
	Role      Role
}

// IsClient returns true for client actors
func (a Actor) IsClient() bool {
	return a.Role == RoleClient
}

// IsProvider returns true for provider actors
func (a Actor) IsProvider() bool {
	return a.Role == RoleProvider
}
