// Package common provides the data structures shared by the API server, the
// HTTP transport and the client. It defines routes, the request/response
// envelope, configuration structures and the logging setup.
//
// The package focuses on:
//   - Route and payload definitions of the HTTP API
//   - Configuration structures for client and server components
//   - Custom logging implementation integrated with Dragonboat's logger registry
//
// Key Components:
//
//   - Request / Response: Transport independent envelope. The transport fills a
//     Request from the incoming call, the server answers with a Response whose
//     payload is serialized afterwards. Factory functions build the health and
//     error payloads.
//
//   - ServerConfig: Dataset locations, listen endpoint, timeouts, CORS origins,
//     parameter strictness, metrics toggle and log level.
//
//   - ClientConfig: Endpoints, timeout and retry behaviour of the API client.
//
//   - Logger: A logger factory registered with Dragonboat's logger package so
//     that every package logger shares one format and level.
package common
