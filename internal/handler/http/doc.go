// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, page handlers, and middleware used by the web
// interface. Cross-cutting concerns such as session loading, request
// tracing, access logging, response compression, and rate limiting are
// handled in this package before requests are delegated to the service
// layer.
package http
