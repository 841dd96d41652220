// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the student registry HTTP API.
//
// [ServerAdapter] hides the REST transport from the command-line client.
// Non-2xx responses are mapped to the sentinel errors in errors.go so that
// callers can use [errors.Is] (e.g. [ErrUnauthorized] for 401,
// [ErrNotFound] for 404).
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/go-student-registry/models"
)

// ServerAdapter talks to the registry server on behalf of one user.
type ServerAdapter interface {
	// SetToken stores the session token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored session token, or "" if none is set.
	Token() string

	// Register creates an account. It does not log in.
	Register(ctx context.Context, credentials models.Credentials) (models.UserResponse, error)

	// Login opens a session and stores its token via SetToken.
	Login(ctx context.Context, credentials models.Credentials) (string, error)

	// Logout closes the current session and clears the stored token.
	Logout(ctx context.Context) error

	CreateStudent(ctx context.Context, student models.Student) (models.Student, error)
	ListStudents(ctx context.Context, faculty string) ([]models.Student, error)
	UpdateStudent(ctx context.Context, update models.StudentUpdate) (models.Student, error)
	DeleteStudent(ctx context.Context, studentID int64) error
	ListCourses(ctx context.Context) ([]string, error)
	FacultyMean(ctx context.Context, faculty string) (models.FacultyMean, error)
	LowResults(ctx context.Context, course string, below int) ([]models.Student, error)

	// ImportCSV uploads a CSV document. The body is gzip-compressed on the
	// wire.
	ImportCSV(ctx context.Context, csv io.Reader) (models.ImportResult, error)

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}
