package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-student-registry/internal/logger"
	"github.com/MKhiriev/go-student-registry/models"
)

func TestCreateSession(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSessionRepository(db, logger.Nop())

	now := time.Now().UTC()
	session := models.Session{Token: "plain", TokenHash: "digest", UserID: 4, CreatedAt: now}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO sessions").
		WithArgs("digest", int64(4), now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateSession(context.Background(), session))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSession_Error(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSessionRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO sessions").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.CreateSession(context.Background(), models.Session{TokenHash: "digest", UserID: 1})
	require.ErrorIs(t, err, ErrExecutingQuery)
}

func TestFindSession(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSessionRepository(db, logger.Nop())

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT token_hash, user_id, created_at FROM sessions").
		WithArgs("digest").
		WillReturnRows(sqlmock.NewRows([]string{"token_hash", "user_id", "created_at"}).AddRow("digest", 4, created))

	session, err := repo.FindSession(context.Background(), "digest")
	require.NoError(t, err)
	assert.Equal(t, models.Session{TokenHash: "digest", UserID: 4, CreatedAt: created}, session)
	assert.Empty(t, session.Token)
}

func TestFindSession_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSessionRepository(db, logger.Nop())

	mock.ExpectQuery("FROM sessions").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"token_hash", "user_id", "created_at"}))

	_, err := repo.FindSession(context.Background(), "missing")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteSession(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "removed", affected: 1, want: true},
		{name: "absent", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := NewSessionRepository(db, logger.Nop())

			mock.ExpectBegin()
			mock.ExpectExec("DELETE FROM sessions WHERE token_hash").
				WithArgs("digest").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			mock.ExpectCommit()

			deleted, err := repo.DeleteSession(context.Background(), "digest")
			require.NoError(t, err)
			assert.Equal(t, tt.want, deleted)
		})
	}
}

func TestDeleteSession_StoreError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSessionRepository(db, logger.Nop())

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	deleted, err := repo.DeleteSession(context.Background(), "digest")
	require.ErrorIs(t, err, ErrBeginningTransaction)
	assert.False(t, deleted)
}

func TestDeleteExpiredSessions(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSessionRepository(db, logger.Nop())

	cutoff := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM sessions WHERE created_at <=").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	deleted, err := repo.DeleteExpiredSessions(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
