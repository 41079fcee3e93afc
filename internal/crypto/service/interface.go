// Package service provides the cryptographic primitives behind article encryption:
// the ChaCha20-Poly1305 symmetric cipher and PBKDF2 key derivation.
package service

import (
	cryptoDomain "github.com/allisson/paywall/internal/crypto/domain"
)

// SealedContent is the output of a seal operation with the tag split off the ciphertext.
type SealedContent struct {
	Nonce      []byte
	Ciphertext []byte
	Tag        []byte
}

// SymmetricCipher defines authenticated encryption with an explicit per-call key.
type SymmetricCipher interface {
	// Encrypt seals plaintext with key. A nil nonce is generated from crypto/rand.
	Encrypt(plaintext, key, nonce []byte) (*SealedContent, error)

	// Decrypt verifies and opens ciphertext. Authentication failures return
	// cryptoDomain.ErrIntegrityCheckFailed.
	Decrypt(ciphertext, key, nonce, tag []byte) ([]byte, error)
}

// KeyDerivation defines deterministic article key derivation.
type KeyDerivation interface {
	// DeriveKey returns the KeySize-byte key for params. Callers should zero it after use.
	DeriveKey(params cryptoDomain.KeyMaterialParams) ([]byte, error)

	// ValidateParams checks params without deriving.
	ValidateParams(params cryptoDomain.KeyMaterialParams) error

	// CacheKey builds the decrypted-content cache key from the reader's address.
	// It is unrelated to key material.
	CacheKey(readerAddress string, articleID uint64) string
}
