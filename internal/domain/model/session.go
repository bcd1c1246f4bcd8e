package model

// Identity is the authenticated operator as returned by the auth endpoints.
// The auth surface of the remote API uses camelCase keys, unlike the entity
// collections which use snake_case.
type Identity struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
}

// FullName returns "First Last".
func (i Identity) FullName() string {
	return i.FirstName + " " + i.LastName
}

// IsAdmin reports whether the identity carries the admin capability.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Session pairs a bearer token with the identity it authenticates.
// The two are always set and cleared together.
type Session struct {
	Token    string
	Identity Identity
}
