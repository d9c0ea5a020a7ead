// Package http implements the HTTP transport of the batted-ball API. It
// provides concrete implementations of the transport interfaces defined in
// the parent package.
//
// The package focuses on:
//   - Server-side routing of GET /health, /api/data and /api/summary
//   - Middleware: panic recovery, request IDs, debug request logging,
//     Prometheus-style metrics and the CORS policy for /api routes
//   - Client-side transport with round-robin endpoint selection and retries
//
// Key Components:
//
//   - httpServerTransport: Implements IAPIServerTransport. It builds a
//     http.ServeMux with one pattern per route, wraps it in the middleware chain
//     and serves it with a http.Server using the configured timeouts. When
//     metrics are enabled the VictoriaMetrics set is exposed on GET /metrics.
//
//   - httpClientTransport: Implements IAPIClientTransport. It selects the next
//     endpoint via round-robin, issues GET requests and retries transport-level
//     failures up to the configured retry count.
//
// Thread Safety:
//
//	Both transports are safe for concurrent use. The in-flight request gauge is
//	backed by an xsync.Counter and the round-robin counter is atomic.
package http
