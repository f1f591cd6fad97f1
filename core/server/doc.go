// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines
// the configuration structure and its validation: the HTTP port, the API key,
// the request body limit and whether Prometheus metrics are exposed.
package server
