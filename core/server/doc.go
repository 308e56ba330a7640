// Package server holds the HTTP server configuration section.
//
// The actual Fiber application is assembled in cmd/start.go; this package
// only contributes the settings (listen port, request body limit) so the
// central config struct can embed them.
package server
