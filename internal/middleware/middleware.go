// Package middleware holds the echo middleware shared by every route and the
// per-function CORS responder.
//
// Cross-cutting concerns live here: request ids, request-scoped logging,
// New Relic transactions, panic recovery, secure headers and the global error
// handler that renders every failure as {"error": message}.
package middleware
