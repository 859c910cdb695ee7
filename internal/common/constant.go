// Package common contains shared constants and sentinel errors used across
// recipebox components.
package common

// Header names attached to every outbound API request.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)

// SessionUserKey is the metadata slot holding the serialized session user.
const SessionUserKey = "user"

// SessionSavedAtKey records when the session slot was last written.
const SessionSavedAtKey = "saved_at"
