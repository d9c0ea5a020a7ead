// Package client implements a Go client for the batted-ball API.
// It mirrors the query.IQueryService operations and forwards them to a remote
// server through a transport and a serializer.
//
// Key Components:
//
//   - IAPIClient: Health, ListRows and Summarize against a running server.
//
//   - NewAPIClient: Factory function that connects the transport and returns a
//     client. Non-200 responses are returned as errors carrying the server's
//     error message.
//
// Usage Example:
//
//	config := common.ClientConfig{
//	  Endpoints:     []string{"localhost:5000"},
//	  TimeoutSecond: 5,
//	  RetryCount:    3,
//	}
//
//	c, _ := client.NewAPIClient(config, http.NewHttpClientTransport(), serializer.NewJSONSerializer())
//
//	min := 90.0
//	rows, err := c.ListRows(query.Filters{Batter: "smith", MinExitSpeed: &min})
//
// Thread Safety:
//
//	The client is safe for concurrent use if the transport is.
package client
