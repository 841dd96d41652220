package service

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-student-registry/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService manages accounts and login sessions.
type AuthService interface {
	// Register creates an account. A taken email yields [ErrEmailTaken].
	Register(ctx context.Context, credentials models.Credentials) (models.User, error)
	// Login opens a session and returns it with the plaintext Token set.
	// Unknown email and wrong password both yield [ErrInvalidCredentials].
	Login(ctx context.Context, credentials models.Credentials) (models.Session, error)
	// Logout closes the session of token. Unknown tokens are not an error.
	Logout(ctx context.Context, token string) error
	// Authorize resolves token to the owning user ID or [ErrUnauthenticated].
	Authorize(ctx context.Context, token string) (int64, error)
	// SweepExpiredSessions deletes sessions older than maxAge.
	SweepExpiredSessions(ctx context.Context, maxAge time.Duration) (int64, error)
}

// StudentService manages student records.
type StudentService interface {
	CreateStudent(ctx context.Context, student models.Student) (models.Student, error)
	// ListStudents lists all students, or those of faculty when it is not empty.
	ListStudents(ctx context.Context, faculty string) ([]models.Student, error)
	UpdateStudent(ctx context.Context, update models.StudentUpdate) (models.Student, error)
	DeleteStudent(ctx context.Context, studentID int64) error
	ListCourses(ctx context.Context) ([]string, error)
	FacultyMean(ctx context.Context, faculty string) (models.FacultyMean, error)
	// LowResults lists students of course whose result is below the threshold.
	LowResults(ctx context.Context, course string, below int) ([]models.Student, error)
	// ImportCSV creates every record of the CSV document in one transaction.
	ImportCSV(ctx context.Context, r io.Reader) (models.ImportResult, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// metrics collection.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService // returns a decorated AuthService applying additional behavior
}

// StudentServiceWrapper defines middleware composition for StudentService.
type StudentServiceWrapper interface {
	Wrap(StudentService) StudentService
}
