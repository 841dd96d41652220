package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-student-registry/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser stores user and returns it with UserID assigned.
	// A duplicate email yields [ErrEmailAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail returns [ErrUserNotFound] on miss.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByID returns [ErrUserNotFound] on miss.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// SessionRepository persists login sessions keyed by token hash.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) error
	// FindSession returns [ErrSessionNotFound] on miss.
	FindSession(ctx context.Context, tokenHash string) (models.Session, error)
	// DeleteSession reports whether a row was removed.
	DeleteSession(ctx context.Context, tokenHash string) (bool, error)
	// DeleteExpiredSessions removes sessions created at or before olderThan
	// and returns how many were removed.
	DeleteExpiredSessions(ctx context.Context, olderThan time.Time) (int64, error)
}

// StudentRepository persists student records.
type StudentRepository interface {
	CreateStudent(ctx context.Context, student models.Student) (models.Student, error)
	// CreateStudents inserts all students in one transaction.
	CreateStudents(ctx context.Context, students []models.Student) (int, error)
	ListStudents(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	// UpdateStudent applies the set fields and returns the stored record.
	UpdateStudent(ctx context.Context, update models.StudentUpdate) (models.Student, error)
	DeleteStudent(ctx context.Context, studentID int64) error
	ListCourses(ctx context.Context) ([]string, error)
	// FacultyMean returns [ErrStudentNotFound] when the faculty has no students.
	FacultyMean(ctx context.Context, faculty string) (float64, error)
}
