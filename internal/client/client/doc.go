// Package client contains the typed wrappers around every SOSENS backend
// endpoint and the bootstrap of the local session database.
//
// # Overview
//
//  1. Client is the endpoint contract used by the services layer. HTTPClient
//     implements it on top of a Doer, normally a *gateway.Gateway.
//  2. Each wrapper owns the reshaping of its endpoint: loosely-typed backend
//     payloads (alternate field names, missing arrays, missing counters) are
//     decoded into private payload structs and converted into the stable
//     shapes of package models. No other layer looks at raw payloads.
//  3. InitDatabase and RunMigrations open the SQLite session database and
//     apply the embedded goose migrations.
//
// # Errors
//
// Wrappers return the gateway's *gateway.Error unchanged, so callers match
// gateway.ErrTimeout, gateway.ErrUnauthorized and friends with errors.Is.
//
// All methods honor context cancellation.
package client
