// Package middleware holds the global and route-level Echo middleware:
// request ids, request-scoped logging, New Relic tracing, session
// authentication, rate limiting, and the global error handler.
package middleware
