// Package http implements the REST transport of go-form-keeper.
//
// It wires the chi router, decodes requests (JSON and multipart
// submissions), maps service errors to status codes and serves locally
// stored uploads. Request tracing and access logging are handled by
// middleware before requests reach the service layer.
package http
