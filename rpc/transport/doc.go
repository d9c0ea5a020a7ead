// Package transport defines the interfaces between the API server/client and
// the wire. A server transport turns incoming calls into common.Request values
// and hands them to a registered ServerHandleFunc; a client transport sends a
// route plus query parameters and returns the raw status and body.
//
// Implementations:
//
//   - http: net/http based transport used by the battedball server and CLI.
package transport
