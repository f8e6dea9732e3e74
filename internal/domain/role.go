package domain

// Role is the caller's role, carried explicitly in the request context.
type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleLandlord Role = "landlord"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleSeeker, RoleLandlord, RoleAdmin:
		return true
	default:
		return false
	}
}

// Identity is the verified caller as supplied by the authentication provider.
type Identity struct {
	UserID string
	Role   Role
}
