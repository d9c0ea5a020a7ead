package transport

import (
	"net"
	"net/url"

	"github.com/kfdigitals/battedball/rpc/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is a function type that handles incoming requests
// This function is called by a server transport layer when a request is received
// It takes a Request and returns the status code, content type and serialized body
type ServerHandleFunc func(req *common.Request) (status int, contentType string, body []byte)

// IAPIServerTransport is the interface for the API transport layer
type IAPIServerTransport interface {
	// RegisterHandler registers the handler for all API routes
	// The transport layer is responsible for turning incoming calls into Requests
	RegisterHandler(handler ServerHandleFunc)
	// Listen opens the configured endpoint and serves until Close is called
	Listen(config common.ServerConfig) error
	// Serve serves on an existing listener until Close is called
	Serve(listener net.Listener, config common.ServerConfig) error
	// Close stops the transport
	Close() error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IAPIClientTransport is the interface for the API client transport
type IAPIClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Send calls a route with the given parameters and returns the raw response
	Send(route common.Route, params url.Values) (status int, body []byte, err error)
	// Close closes the transport connection
	Close() error
}
