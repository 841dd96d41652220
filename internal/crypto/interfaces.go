package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher turns plaintext passwords into salted slow hashes and
// checks candidates against them.
type PasswordHasher interface {
	// Hash returns a self-describing hash string (algorithm, cost and salt
	// included). Two calls with the same input return different hashes.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches hash. A malformed hash
	// yields false.
	Verify(plaintext, hash string) bool

	// DummyHash returns a valid hash that no user password matches. Login
	// verifies against it when the email is unknown.
	DummyHash() string
}

// TokenGenerator produces opaque session tokens and their storage digests.
type TokenGenerator interface {
	// Generate returns a new random URL-safe token.
	Generate() (string, error)

	// HashToken returns the digest stored in place of token.
	HashToken(token string) string
}
