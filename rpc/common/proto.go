package common

import (
	"net/http"
	"net/url"
)

// --------------------------------------------------------------------------
// Routes
// --------------------------------------------------------------------------

// Route is the path of an API operation.
type Route string

const (
	RouteHealth  Route = "/health"
	RouteData    Route = "/api/data"
	RouteSummary Route = "/api/summary"
	RouteMetrics Route = "/metrics"
)

// Routes lists the routes served by the API handler.
var Routes = []Route{RouteHealth, RouteData, RouteSummary}

func (r Route) String() string {
	return string(r)
}

// --------------------------------------------------------------------------
// Request / Response
// --------------------------------------------------------------------------

// Request is a transport independent API request.
type Request struct {
	Route     Route
	Params    url.Values
	RequestID string
}

// Response carries a status code and a payload that is yet to be serialized.
type Response struct {
	Status  int
	Payload any
}

// HealthPayload is the body of the health check.
type HealthPayload struct {
	Status     string `json:"status"`
	DataLoaded bool   `json:"data_loaded"`
}

// ErrorPayload is the body of every failed request.
type ErrorPayload struct {
	Error string `json:"error"`
}

// --------------------------------------------------------------------------
// Response Factory Functions
// --------------------------------------------------------------------------

// NewOKResponse creates a 200 response
func NewOKResponse(payload any) *Response {
	return &Response{
		Status:  http.StatusOK,
		Payload: payload,
	}
}

// NewHealthResponse creates the health check response
func NewHealthResponse(dataLoaded bool) *Response {
	return NewOKResponse(HealthPayload{
		Status:     "healthy",
		DataLoaded: dataLoaded,
	})
}

// NewErrorResponse creates an error response with the given status
func NewErrorResponse(status int, msg string) *Response {
	return &Response{
		Status:  status,
		Payload: ErrorPayload{Error: msg},
	}
}
