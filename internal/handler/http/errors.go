// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors for malformed request input detected before the service
// layer is called. Callers can match against them with [errors.Is].
var (
	// ErrInvalidJSON is returned when the request body is not a valid JSON
	// document for the endpoint.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidStudentID is returned when the {id} path parameter is not a
	// positive integer.
	ErrInvalidStudentID = errors.New("invalid student ID")

	// ErrInvalidThreshold is returned when the "below" query parameter is not
	// an integer.
	ErrInvalidThreshold = errors.New("invalid `below` query parameter")

	// ErrBodyTooLarge is returned when a request body exceeds the limit of
	// its endpoint.
	ErrBodyTooLarge = errors.New("request body is too large")
)
