package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Defaults
// --------------------------------------------------------------------------

const (
	DefaultEndpoint      = "0.0.0.0:5000"
	DefaultTimeoutSecond = 15
)

// DefaultCORSOrigins are the browser origins allowed to call the /api routes.
var DefaultCORSOrigins = []string{
	"https://delightful-glacier-085b1650f.6.azurestaticapps.net",
	"http://localhost:3000",
}

// --------------------------------------------------------------------------
// API server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters for the API server.
type ServerConfig struct {
	// Dataset parameters
	DataFiles []string
	Sheet     string

	// HTTP api settings
	Endpoint       string
	TimeoutSecond  int64
	CORSOrigins    []string
	StrictParams   bool
	MetricsEnabled bool

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// HTTP settings
	addSection("API Server")
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Strict Parameters", strconv.FormatBool(c.StrictParams))
	addField("Metrics", strconv.FormatBool(c.MetricsEnabled))

	// CORS
	addSection("CORS Origins")
	for i, origin := range c.CORSOrigins {
		addField(strconv.Itoa(i), origin)
	}

	// Dataset
	addSection("Dataset")
	for i, path := range c.DataFiles {
		addField(fmt.Sprintf("Candidate %d", i), path)
	}
	if c.Sheet != "" {
		addField("Sheet", c.Sheet)
	}

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// API client configuration struct
// --------------------------------------------------------------------------

type ClientConfig struct {
	Endpoints     []string
	TimeoutSecond int
	RetryCount    int
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.RetryCount))

	// Endpoints
	addSection("Endpoints")
	for i, endpoint := range c.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}
