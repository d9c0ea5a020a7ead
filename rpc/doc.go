// Package rpc provides the API layer of battedball. It turns HTTP requests into
// calls on the query service and serializes the results.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures used across the API layer, including routes,
//     request and response types, configuration structures, and logging.
//
//   - transport: Network communication abstractions with an HTTP implementation
//     (routing, CORS, request ids, metrics) for both server and client.
//
//   - serializer: Payload serialization (JSON) for converting responses to bytes
//     and back.
//
//   - client: API client mirroring the query service, used by the CLI.
//
//   - server: Server components that dispatch requests to the query service.
package rpc
