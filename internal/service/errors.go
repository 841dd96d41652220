package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrEmailTaken          = errors.New("email is already taken")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUnauthenticated     = errors.New("unauthenticated")

	ErrTokenGenerationFailed = errors.New("session token generation failed")

	ErrInvalidCSV            = errors.New("invalid CSV")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
