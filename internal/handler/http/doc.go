// Package http implements the REST transport of the student registry.
//
// It exposes route wiring, request handlers, and middleware. Request
// tracing, access logging, response compression, and session-token
// authentication are handled here before requests are delegated to the
// service layer.
package http
