// Package server provides the HTTP server for problemkit applications:
// a Gin engine mounted on a ServeMux, served over HTTP/1.1 and h2c.
//
// Every request passes through a single error translation layer installed
// at the top of the handler tree:
//
//   - RequestID: X-Request-Id generation and propagation
//   - Tracing: one server span per request
//   - Errors: failures and panics become application/problem+json responses
//
// Gin handlers report failures with RespondWithError (or c.Error). Handlers
// mounted with HandleE return them.
package server
