// Package server runs the HTTP transport of go-form-keeper.
//
// It owns the server lifecycle: startup, waiting for a stop signal and a
// graceful shutdown bounded by the configured timeout.
package server
