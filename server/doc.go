// Package server provides the HTTP server: Gin served over HTTP/1.1 and
// h2c, wrapped as a lifecycle component.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: request ID generation and propagation
//   - Telemetry: server spans and request metrics
//   - RequestLogger: one log line per request with duration and status
//   - CORS: origin allow-list with echoed origins
//   - BodySizeLimit: request body size cap
//
// # Endpoints
//
// Built-in endpoints (server/endpoint): /health, /info and /version.
package server
