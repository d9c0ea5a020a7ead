// Package server wires the query service to a transport. It registers a single
// handler with the transport, lets an IAPIServerAdapter turn each request into
// a response and serializes the response payload.
//
// Error handling:
//
//	Every query error (DataUnavailable, QueryError) is answered with HTTP 500
//	and an {"error": message} payload; the wire format does not distinguish
//	error kinds. Malformed numeric filters are ignored unless strict parameter
//	checking is enabled, in which case they are rejected with 400. A panic in
//	the adapter is recovered and reported as a QueryError.
package server
