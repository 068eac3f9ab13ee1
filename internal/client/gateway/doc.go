// Package gateway is the single choke point for every call the client makes
// to the SOSENS backend.
//
// A Gateway joins endpoint paths beneath the configured API prefix, sets the
// JSON (or form) content type, attaches the cached bearer token when one
// exists, bounds every call with a timeout and turns every failure into an
// *Error whose Kind tells timeouts, unreachable backends, backend-reported
// errors, undecodable payloads and caller cancellation apart:
//
//	var me models.UserProfile
//	err := gw.Do(ctx, gateway.Request{Method: http.MethodGet, Path: "auth/me"}, &me)
//	switch {
//	case errors.Is(err, gateway.ErrTimeout):      // backend is probably waking up
//	case errors.Is(err, gateway.ErrUnauthorized): // token rejected
//	}
//
// The gateway never retries and never caches. Fence adds cancel-and-replace
// semantics for callers that may fire the same logical operation twice.
package gateway
