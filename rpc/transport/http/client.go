package http

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kfdigitals/battedball/rpc/common"
	"github.com/kfdigitals/battedball/rpc/transport"
)

func NewHttpClientTransport() transport.IAPIClientTransport {
	return &httpClientTransport{}
}

type httpClientTransport struct {
	serverURLs []*url.URL
	client     *http.Client
	counter    uint32
	retryCount int
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IAPIClientTransport)
// --------------------------------------------------------------------------

func (transport *httpClientTransport) Connect(config common.ClientConfig) error {
	if len(config.Endpoints) == 0 {
		return fmt.Errorf("http transport: no endpoints configured")
	}

	// Parse each server URL
	parsedURLs := make([]*url.URL, 0, len(config.Endpoints))
	for _, server := range config.Endpoints {
		server = strings.TrimSpace(server)
		if server == "" {
			continue
		}
		if !strings.Contains(server, "://") {
			server = "http://" + server
		}
		parsedURL, err := url.Parse(strings.TrimRight(server, "/"))
		if err != nil {
			return err
		}
		parsedURLs = append(parsedURLs, parsedURL)
	}
	if len(parsedURLs) == 0 {
		return fmt.Errorf("http transport: no endpoints configured")
	}

	timeout := time.Duration(config.TimeoutSecond) * time.Second
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     timeout,
		},
	}

	transport.client = client
	transport.serverURLs = parsedURLs
	transport.counter = 0
	transport.retryCount = max(config.RetryCount, 1)

	return nil
}

func (transport *httpClientTransport) Send(route common.Route, params url.Values) (status int, body []byte, err error) {
	// Check if the transport is initialized
	if transport.client == nil {
		return 0, nil, fmt.Errorf("http transport not initialized")
	}

	// Select the next server via round-robin
	idx := atomic.AddUint32(&transport.counter, 1) % uint32(len(transport.serverURLs))
	requestURL := transport.serverURLs[idx].JoinPath(route.String())
	if len(params) > 0 {
		requestURL.RawQuery = params.Encode()
	}

	// Send the request (with retries)
	var httpResponse *http.Response
	for i := 0; i < transport.retryCount; i++ {
		httpResponse, err = transport.client.Get(requestURL.String())
		if err == nil {
			break
		}
		Logger.Debugf("GET %s failed (attempt %d/%d): %v", requestURL, i+1, transport.retryCount, err)
	}
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		if err := httpResponse.Body.Close(); err != nil {
			Logger.Errorf("Failed to close response body: %v", err)
		}
	}()

	body, err = io.ReadAll(httpResponse.Body)
	if err != nil {
		return 0, nil, err
	}
	return httpResponse.StatusCode, body, nil
}

func (transport *httpClientTransport) Close() error {
	if transport.client != nil {
		transport.client.CloseIdleConnections()
	}

	transport.client = nil
	transport.serverURLs = nil

	return nil
}
