// Package models defines the client-side copies of backend records. The
// backend owns every entity; the client only holds transient copies plus the
// session user.
package models

// User is the signed-in account as returned by the login endpoint and kept
// in the session slot. Token is opaque and presented as a bearer credential
// without local validation.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// Valid reports whether u can back a session: a positive id and a token.
func (u *User) Valid() bool {
	return u != nil && u.ID > 0 && u.Token != ""
}

// PublicUser is the /users/:id payload. Email is empty unless the viewer is
// the user themself.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the signup request body.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
