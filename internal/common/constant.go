// Package common contains constants and small helpers shared by the client
// packages.
package common

const (
	// AuthTokenKey is the metadata key holding the bearer token.
	AuthTokenKey = "sosens_auth_token"
	// UserProfileKey is the metadata key holding the cached profile as JSON.
	UserProfileKey = "sosens_user"

	// RequestIDHeaderName carries a per-call correlation id on outbound requests.
	RequestIDHeaderName = "X-Request-ID"
)
