package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/MKhiriev/go-student-registry/internal/metrics"
	"github.com/MKhiriev/go-student-registry/models"
)

// AuthMetricsService records the outcome of every auth operation.
type AuthMetricsService struct {
	inner     AuthService
	collector metrics.MetricsCollector
}

func NewAuthMetricsService(collector metrics.MetricsCollector) AuthServiceWrapper {
	return &AuthMetricsService{collector: collector}
}

func (m *AuthMetricsService) Register(ctx context.Context, credentials models.Credentials) (models.User, error) {
	user, err := m.inner.Register(ctx, credentials)
	m.collector.RecordAuth("register", outcome(err, ErrInvalidDataProvided, ErrEmailTaken))
	return user, err
}

func (m *AuthMetricsService) Login(ctx context.Context, credentials models.Credentials) (models.Session, error) {
	session, err := m.inner.Login(ctx, credentials)
	m.collector.RecordAuth("login", outcome(err, ErrInvalidCredentials))
	return session, err
}

func (m *AuthMetricsService) Logout(ctx context.Context, token string) error {
	err := m.inner.Logout(ctx, token)
	m.collector.RecordAuth("logout", outcome(err))
	return err
}

func (m *AuthMetricsService) Authorize(ctx context.Context, token string) (int64, error) {
	userID, err := m.inner.Authorize(ctx, token)
	m.collector.RecordAuth("authorize", outcome(err, ErrUnauthenticated))
	return userID, err
}

func (m *AuthMetricsService) SweepExpiredSessions(ctx context.Context, maxAge time.Duration) (int64, error) {
	removed, err := m.inner.SweepExpiredSessions(ctx, maxAge)
	m.collector.RecordSessionsSwept(removed)
	return removed, err
}

func (m *AuthMetricsService) Wrap(wrapper AuthService) AuthService {
	m.inner = wrapper
	return m
}

// StudentMetricsService counts records created by CSV import. Every other
// call goes straight to the embedded service.
type StudentMetricsService struct {
	StudentService
	collector metrics.MetricsCollector
}

func NewStudentMetricsService(collector metrics.MetricsCollector) StudentServiceWrapper {
	return &StudentMetricsService{collector: collector}
}

func (m *StudentMetricsService) ImportCSV(ctx context.Context, r io.Reader) (models.ImportResult, error) {
	result, err := m.StudentService.ImportCSV(ctx, r)
	if err == nil {
		m.collector.RecordStudentsImported(result.Imported)
	}
	return result, err
}

func (m *StudentMetricsService) Wrap(wrapper StudentService) StudentService {
	m.StudentService = wrapper
	return m
}

// outcome classifies err: nil is a success, any of expected is a client
// failure, everything else is an error.
func outcome(err error, expected ...error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	for _, e := range expected {
		if errors.Is(err, e) {
			return metrics.OutcomeFailure
		}
	}
	return metrics.OutcomeError
}
