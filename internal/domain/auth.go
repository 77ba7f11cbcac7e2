package domain

// Identity is the authenticated caller decoded from a verified bearer token.
// It carries everything the authorization layer needs; no store lookup is
// performed per request.
type Identity struct {
	Username string
	Role     Role
}
