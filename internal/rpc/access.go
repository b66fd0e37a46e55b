package rpc

// Role is the authorization signal carried by a resolved identity.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Identity is the caller resolved by the session collaborator for one call.
type Identity struct {
	ID     uint
	OpenID string
	Role   Role
}

// Access is the access level fixed on a procedure at registration time.
type Access int

const (
	// Public procedures run with or without a resolved identity.
	Public Access = iota
	// Protected procedures require a resolved identity.
	Protected
	// Admin procedures require a resolved identity with the admin role.
	Admin
)

func (a Access) String() string {
	switch a {
	case Protected:
		return "protected"
	case Admin:
		return "admin"
	default:
		return "public"
	}
}

// Authorize evaluates the policy for a caller. The admin level composes the
// protected identity check with one extra role predicate; the identity check
// is written exactly once.
func (a Access) Authorize(id *Identity) *Error {
	if a == Public {
		return nil
	}
	if id == nil {
		return Unauthenticated()
	}
	if a == Admin && id.Role != RoleAdmin {
		return Forbidden()
	}
	return nil
}
