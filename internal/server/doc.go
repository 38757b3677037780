// Package server runs a small HTTP fixture that serves a member roster for local development.
//
// # Routes
//
//   - GET /members.json : the roster, a JSON array of {id, name, email, role}
//   - GET /health : liveness with the roster size
//
// # Router Infrastructure
//
// [BasicRouter] wraps [http.ServeMux] method-qualified patterns ("GET /path") and applies [Middleware]
// in the order added (first added is outermost). Custom handlers implement [Handler] and list their own routes.
//
// # Middleware
//
//   - [Logging] : one structured log line per request
//   - [RateLimit] : a token bucket per client address, answering 429 when exhausted
package server
