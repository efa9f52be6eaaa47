package models

// Session is an immutable snapshot of the authentication state. It is
// produced only by the session manager; all other components read it.
//
// Loading is true until the initial refresh has resolved; consumers must not
// treat that interval as "unauthenticated".
type Session struct {
	User    *User
	Loading bool
}

// Authenticated reports whether a user is present.
func (s Session) Authenticated() bool {
	return s.User != nil
}

// IsAdmin reports whether the session belongs to an admin user.
func (s Session) IsAdmin() bool {
	return s.User != nil && s.User.Role == RoleAdmin
}
