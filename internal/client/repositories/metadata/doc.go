// Package metadata is the durable key/value store behind the client
// session. Values are opaque byte strings; the session package decides
// what the keys mean.
//
// The SQLite implementation works on any dbx.DBTX, so the same repository
// type can be bound to a *sql.DB for single writes or to a *sql.Tx when
// several keys must change together.
//
// Get returns (nil, nil) for a missing key. Delete is idempotent.
package metadata
