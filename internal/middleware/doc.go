// Package middleware provides HTTP middleware for the MAHOSTAV API.
//
// # Available Middleware
//
//   - Auth: bearer token validation, claims placed in the request context
//   - RequireParticipant: loads the caller's profile and demands a participant ID
//   - RateLimit: token bucket per user or remote address
//   - Idempotency: replays POST responses sent with an Idempotency-Key
//   - Metrics: per-route request counters and latency
//   - RequestID, Logger, Recovery, CORS, Compress
//
// # Ordering
//
// Idempotency and RateLimit key on the user ID, so they run after Auth.
// Metrics reads the matched route pattern and must wrap the ServeMux
// directly:
//
//	handler := middleware.Chain(middleware.Metrics(m)(mux),
//		middleware.Recovery,
//		middleware.RequestID,
//		middleware.Logger,
//	)
//
// # Context Values
//
//   - GetClaims(ctx), GetUserID(ctx): the authenticated session
//   - GetProfile(ctx): the participant profile loaded by RequireParticipant
//   - GetRequestID(ctx): the request identifier
package middleware
