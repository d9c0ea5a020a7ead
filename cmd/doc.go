// Package cmd implements the command-line interface of battedball. It provides a
// hierarchical command structure for running the API server, querying a running
// server and checking data files.
//
// The package is organized into several subpackages:
//
//   - serve: Starts the HTTP API over the loaded dataset
//   - query: Client commands for a running server (health, data, summary)
//   - validate: Reads a data file strictly and prints its summary
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See battedball -help for a list of all commands.
package cmd
