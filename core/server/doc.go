// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber app from this configuration: the listen
// port, the API key guarding remote management routes and the service name
// reported by /health.
package server
