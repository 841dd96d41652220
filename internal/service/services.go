package service

import (
	"github.com/MKhiriev/go-student-registry/internal/config"
	"github.com/MKhiriev/go-student-registry/internal/crypto"
	"github.com/MKhiriev/go-student-registry/internal/logger"
	"github.com/MKhiriev/go-student-registry/internal/metrics"
	"github.com/MKhiriev/go-student-registry/internal/store"
)

type Services struct {
	AuthService    AuthService
	StudentService StudentService
	AppInfoService AppInfoService
}

// NewServices builds every service on top of storages. The password hasher
// is created from cfg.App.PasswordHashCost.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, collector metrics.MetricsCollector, logger *logger.Logger) (*Services, error) {
	hasher, err := crypto.NewPasswordHasher(cfg.App.PasswordHashCost)
	if err != nil {
		return nil, err
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	authService := NewAuthMetricsService(collector).Wrap(
		NewAuthService(storages, hasher, crypto.NewTokenGenerator(), cfg.App, logger),
	)

	studentService := NewStudentMetricsService(collector).Wrap(
		NewStudentValidationService().Wrap(
			NewStudentService(storages, logger),
		),
	)

	return &Services{
		AuthService:    authService,
		StudentService: studentService,
		AppInfoService: appInfoService,
	}, nil
}
