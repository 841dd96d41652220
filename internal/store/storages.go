package store

import "github.com/MKhiriev/go-student-registry/internal/logger"

// Storages groups every repository the service layer depends on.
type Storages struct {
	UserRepository    UserRepository
	SessionRepository SessionRepository
	StudentRepository StudentRepository
}

// NewStorages builds all repositories on top of db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		SessionRepository: NewSessionRepository(db, log),
		StudentRepository: NewStudentRepository(db, log),
	}
}
