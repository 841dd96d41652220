package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyEmail       = errors.New("email is required")
	ErrEmailTooLong     = errors.New("email is too long")
	ErrEmptyPassword    = errors.New("password is required")
	ErrPasswordTooLong  = errors.New("password exceeds 72 bytes")
	ErrInvalidStudentID = errors.New("invalid student ID")
	ErrEmptyLastName    = errors.New("lastname is required")
	ErrEmptyFirstName   = errors.New("firstname is required")
	ErrEmptyFaculty     = errors.New("faculty is required")
	ErrEmptyCourse      = errors.New("course is required")
	ErrNegativeResult   = errors.New("result cannot be negative")
)
