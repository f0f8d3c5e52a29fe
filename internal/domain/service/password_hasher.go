// Package service defines interfaces for core, stateless domain logic.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying algorithm (Argon2id), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted, encoded hash from a plaintext password.
	Hash(password string) (string, error)

	// Verify compares a plaintext password against an encoded hash.
	// (false, nil) means verification ran and the password did not match;
	// a non-nil error means verification could not run at all (malformed
	// hash, unsupported parameters). Callers must keep the two apart.
	Verify(hash, password string) (bool, error)
}
