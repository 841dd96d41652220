// Package server runs the HTTP transport of the student registry and shuts
// it down gracefully when the run context is cancelled.
package server
