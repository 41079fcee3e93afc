// Package service provides credential services for publisher endpoints.
//
// Publishers authenticate with a single bearer API key. Only its Argon2id hash is
// configured on the server; the plain key is shown once when it is generated.
package service

// APIKeyService defines operations for publisher API key generation and validation.
type APIKeyService interface {
	// GenerateAPIKey creates a new random API key and returns it with its hash.
	GenerateAPIKey() (plainKey string, hashedKey string, err error)

	// HashAPIKey hashes a plain text API key.
	HashAPIKey(plainKey string) (hashedKey string, err error)

	// CompareAPIKey reports whether plainKey matches hashedKey in constant time.
	CompareAPIKey(plainKey string, hashedKey string) bool
}
