// Package common contains shared constants and helpers used across the
// member client components.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on authenticated
	// requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName tags every outbound request for log correlation.
	RequestIDHeaderName = "X-Request-ID"

	// BearerPrefix precedes the session token in the Authorization header.
	BearerPrefix = "Bearer "
)

// Keys of the on-device metadata store.
const (
	SessionKey = "userData"
	UserIDKey  = "userId"
)
