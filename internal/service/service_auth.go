// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-student-registry/internal/config"
	"github.com/MKhiriev/go-student-registry/internal/crypto"
	"github.com/MKhiriev/go-student-registry/internal/logger"
	"github.com/MKhiriev/go-student-registry/internal/store"
	"github.com/MKhiriev/go-student-registry/internal/validators"
	"github.com/MKhiriev/go-student-registry/models"
)

// authService is the concrete implementation of AuthService.
// Passwords are stored as bcrypt hashes and sessions are opaque random
// tokens whose SHA-256 digests live in the sessions table.
type authService struct {
	users    store.UserRepository
	sessions store.SessionRepository

	hasher    crypto.PasswordHasher
	tokens    crypto.TokenGenerator
	validator validators.Validator

	// sessionMaxAge bounds session lifetime on every Authorize call.
	sessionMaxAge time.Duration

	// now is replaced in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an AuthService on top of the user and session
// repositories of storages.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	storages *store.Storages,
	hasher crypto.PasswordHasher,
	tokens crypto.TokenGenerator,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		users:         storages.UserRepository,
		sessions:      storages.SessionRepository,
		hasher:        hasher,
		tokens:        tokens,
		validator:     validators.NewCredentialsValidator(),
		sessionMaxAge: cfg.SessionMaxAge,
		now:           time.Now,
		logger:        logger,
	}
}

// Register creates a new account.
//
// Returns the persisted user (with a store-assigned UserID) or:
//   - ErrInvalidDataProvided if the email or password is empty or the
//     password exceeds 72 bytes.
//   - ErrEmailTaken if the email is already registered.
//   - A wrapped storage error for any other failure.
func (a *authService) Register(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, credentials); err != nil {
		log.Warn().Err(err).Str("func", "authService.Register").Msg("invalid credentials provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	passwordHash, err := a.hasher.Hash(credentials.Password)
	if err != nil {
		log.Err(err).Str("func", "authService.Register").Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.users.CreateUser(ctx, models.User{
		Email:        credentials.Email,
		PasswordHash: passwordHash,
		CreatedAt:    a.now().UTC(),
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		log.Info().Str("func", "authService.Register").Msg("email is already taken")
		return models.User{}, ErrEmailTaken
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Register").Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("func", "authService.Register").Int64("user_id", user.UserID).Msg("user registered")
	return user, nil
}

// Login checks credentials and opens a new session.
//
// Empty fields, an unknown email and a wrong password all return
// ErrInvalidCredentials. On the first two the password is still verified
// against a dummy hash so every rejection takes comparable time.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.Session, error) {
	log := logger.FromContext(ctx)

	if credentials.Email == "" || credentials.Password == "" {
		a.hasher.Verify(credentials.Password, a.hasher.DummyHash())
		log.Info().Str("func", "authService.Login").Msg("login rejected: empty credentials")
		return models.Session{}, ErrInvalidCredentials
	}

	user, err := a.users.FindUserByEmail(ctx, credentials.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		a.hasher.Verify(credentials.Password, a.hasher.DummyHash())
		log.Info().Str("func", "authService.Login").Msg("login rejected")
		return models.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Msg("user search by email failed")
		return models.Session{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.hasher.Verify(credentials.Password, user.PasswordHash) {
		log.Info().Str("func", "authService.Login").Msg("login rejected")
		return models.Session{}, ErrInvalidCredentials
	}

	token, err := a.tokens.Generate()
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Msg("token generation failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrTokenGenerationFailed, err)
	}

	session := models.Session{
		Token:     token,
		TokenHash: a.tokens.HashToken(token),
		UserID:    user.UserID,
		CreatedAt: a.now().UTC(),
	}
	if err = a.sessions.CreateSession(ctx, session); err != nil {
		log.Err(err).Str("func", "authService.Login").Int64("user_id", user.UserID).Msg("session creation failed")
		return models.Session{}, fmt.Errorf("session creation failed: %w", err)
	}

	log.Info().Str("func", "authService.Login").Int64("user_id", user.UserID).Msg("user logged in")
	return session, nil
}

// Logout deletes the session of token. Empty and unknown tokens are a no-op;
// only storage failures are returned.
func (a *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	deleted, err := a.sessions.DeleteSession(ctx, a.tokens.HashToken(token))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.Logout").Msg("session deletion failed")
		return fmt.Errorf("session deletion failed: %w", err)
	}

	logger.FromContext(ctx).Debug().Str("func", "authService.Logout").Bool("deleted", deleted).Msg("logout processed")
	return nil
}

// Authorize returns the user ID owning token.
//
// Empty, unknown and expired tokens, and sessions whose user no longer
// exists, all yield ErrUnauthenticated. Storage failures are wrapped and
// returned as is.
func (a *authService) Authorize(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrUnauthenticated
	}

	log := logger.FromContext(ctx)

	session, err := a.sessions.FindSession(ctx, a.tokens.HashToken(token))
	if errors.Is(err, store.ErrSessionNotFound) {
		return 0, ErrUnauthenticated
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Authorize").Msg("session lookup failed")
		return 0, fmt.Errorf("session lookup failed: %w", err)
	}

	if session.IsExpiredAt(a.now(), a.sessionMaxAge) {
		log.Debug().Str("func", "authService.Authorize").Int64("user_id", session.UserID).Msg("session expired")
		return 0, ErrUnauthenticated
	}

	if _, err = a.users.FindUserByID(ctx, session.UserID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Warn().Str("func", "authService.Authorize").Int64("user_id", session.UserID).Msg("session owner does not exist")
			return 0, ErrUnauthenticated
		}
		log.Err(err).Str("func", "authService.Authorize").Msg("user lookup failed")
		return 0, fmt.Errorf("user lookup failed: %w", err)
	}

	return session.UserID, nil
}

// SweepExpiredSessions deletes every session created at or before
// now - maxAge and returns how many were removed.
func (a *authService) SweepExpiredSessions(ctx context.Context, maxAge time.Duration) (int64, error) {
	if maxAge < 0 {
		return 0, fmt.Errorf("%w: negative max age %s", ErrInvalidDataProvided, maxAge)
	}

	cutoff := a.now().UTC().Add(-maxAge)
	removed, err := a.sessions.DeleteExpiredSessions(ctx, cutoff)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.SweepExpiredSessions").Msg("sweep failed")
		return 0, fmt.Errorf("sweep failed: %w", err)
	}

	return removed, nil
}
