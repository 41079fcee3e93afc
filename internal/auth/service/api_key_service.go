package service

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/paywall/internal/errors"
)

// apiKeyLength is the number of random bytes in a generated key.
const apiKeyLength = 32

// apiKeyService implements APIKeyService using Argon2id.
type apiKeyService struct {
	hasher *pwdhash.PasswordHasher
}

// NewAPIKeyService creates an APIKeyService using the Moderate Argon2id policy.
func NewAPIKeyService() APIKeyService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &apiKeyService{
		hasher: hasher,
	}
}

// GenerateAPIKey creates a URL-safe base64 key from 32 random bytes.
func (s *apiKeyService) GenerateAPIKey() (string, string, error) {
	randomBytes := make([]byte, apiKeyLength)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate api key")
	}

	plainKey := base64.URLEncoding.EncodeToString(randomBytes)

	hashedKey, err := s.HashAPIKey(plainKey)
	if err != nil {
		return "", "", err
	}

	return plainKey, hashedKey, nil
}

// HashAPIKey hashes a plain API key using Argon2id.
func (s *apiKeyService) HashAPIKey(plainKey string) (string, error) {
	hashedKey, err := s.hasher.Hash([]byte(plainKey))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash api key")
	}
	return hashedKey, nil
}

// CompareAPIKey verifies a plain key against its hash. Malformed hashes never match.
func (s *apiKeyService) CompareAPIKey(plainKey string, hashedKey string) bool {
	ok, err := s.hasher.Verify([]byte(plainKey), hashedKey)
	if err != nil {
		return false
	}
	return ok
}
