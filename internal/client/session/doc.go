// Package session keeps the authenticated session of the terminal client:
// the backend's bearer token and the profile of the signed-in user.
//
// Both values live in the local SQLite metadata table under the keys
// common.AuthTokenKey and common.UserProfileKey. They are written and
// removed together inside one transaction, so a reader sees either a
// complete session or none. A damaged profile entry is treated as "no
// user" and logged instead of surfacing as an error.
//
// Store implements gateway.TokenSource and is handed to the gateway when
// the application is wired together.
package session
