package client

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kfdigitals/battedball/lib/dataset"
	"github.com/kfdigitals/battedball/lib/query"
	"github.com/kfdigitals/battedball/rpc/common"
	"github.com/kfdigitals/battedball/rpc/serializer"
	"github.com/kfdigitals/battedball/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("client")

// IAPIClient is the client side view of the batted-ball API
type IAPIClient interface {
	// Health returns the server's health payload
	Health() (common.HealthPayload, error)
	// ListRows returns the rows matching filters
	ListRows(filters query.Filters) ([]dataset.Row, error)
	// Summarize returns the summary statistics of the whole table
	Summarize() (query.Summary, error)
	// Close releases the transport
	Close() error
}

// APIError is returned when the server answers with a non-200 status
type APIError struct {
	Status int
	Msg    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server responded %d: %s", e.Status, e.Msg)
}

// NewAPIClient creates a new API client
// The function takes a config, a transport and a serializer as parameters
// It returns an IAPIClient and an error if the transport cannot connect
func NewAPIClient(
	config common.ClientConfig,
	transport transport.IAPIClientTransport,
	serializer serializer.IAPISerializer,
) (IAPIClient, error) {

	// Connect the transport
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	return &apiClient{
		config:     config,
		transport:  transport,
		serializer: serializer,
	}, nil
}

type apiClient struct {
	config     common.ClientConfig
	transport  transport.IAPIClientTransport
	serializer serializer.IAPISerializer
}

// --------------------------------------------------------------------------
// Interface Methods (docu see IAPIClient)
// --------------------------------------------------------------------------

func (c *apiClient) Health() (health common.HealthPayload, err error) {
	err = c.invoke(common.RouteHealth, nil, &health)
	return health, err
}

func (c *apiClient) ListRows(filters query.Filters) ([]dataset.Row, error) {
	rows := make([]dataset.Row, 0)
	if err := c.invoke(common.RouteData, filters.Values(), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *apiClient) Summarize() (summary query.Summary, err error) {
	err = c.invoke(common.RouteSummary, nil, &summary)
	return summary, err
}

func (c *apiClient) Close() error {
	return c.transport.Close()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// invoke sends a request and decodes the response into out.
// Error payloads are converted into an *APIError.
func (c *apiClient) invoke(route common.Route, params url.Values, out any) error {
	status, body, err := c.transport.Send(route, params)
	if err != nil {
		return fmt.Errorf("%s: %w", route, err)
	}

	if status != http.StatusOK {
		var payload common.ErrorPayload
		if err := c.serializer.Deserialize(body, &payload); err != nil || payload.Error == "" {
			payload.Error = http.StatusText(status)
		}
		Logger.Debugf("%s failed with %d: %s", route, status, payload.Error)
		return &APIError{Status: status, Msg: payload.Error}
	}

	if err := c.serializer.Deserialize(body, out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", route, err)
	}
	return nil
}

// IsDataUnavailable reports whether err is the server's answer for an empty table
func IsDataUnavailable(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusInternalServerError && apiErr.Msg == query.MsgDataNotLoaded
}
