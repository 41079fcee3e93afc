package service

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/allisson/paywall/internal/crypto/domain"
)

// ChaCha20Poly1305Cipher implements SymmetricCipher using ChaCha20-Poly1305.
//
// The cipher holds no key; every call builds the AEAD from the key it is given, so one
// instance is safe for concurrent use across articles.
type ChaCha20Poly1305Cipher struct{}

// NewChaCha20Poly1305 creates a new ChaCha20-Poly1305 cipher.
func NewChaCha20Poly1305() *ChaCha20Poly1305Cipher {
	return &ChaCha20Poly1305Cipher{}
}

// Encrypt seals plaintext and returns nonce, ciphertext and the 16-byte tag separately.
//
// The key must be exactly 32 bytes. A supplied nonce must be exactly 12 bytes; when nonce
// is nil a fresh one is read from crypto/rand. Never reuse a nonce with the same key.
func (c *ChaCha20Poly1305Cipher) Encrypt(plaintext, key, nonce []byte) (*SealedContent, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	if nonce == nil {
		nonce = make([]byte, cryptoDomain.NonceSize)
		if _, err := rand.Read(nonce); err != nil {
			return nil, fmt.Errorf("failed to generate nonce: %w", err)
		}
	} else if len(nonce) != cryptoDomain.NonceSize {
		return nil, cryptoDomain.ErrInvalidNonceSize
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
	}

	sealed := aead.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - cryptoDomain.TagSize

	return &SealedContent{
		Nonce:      nonce,
		Ciphertext: sealed[:split:split],
		Tag:        sealed[split:],
	}, nil
}

// Decrypt rejoins ciphertext and tag and opens them.
//
// Key, nonce and tag lengths are checked before any cryptographic work. A failed
// authentication (wrong key, modified ciphertext or tag) returns ErrIntegrityCheckFailed
// and never any plaintext.
func (c *ChaCha20Poly1305Cipher) Decrypt(ciphertext, key, nonce, tag []byte) ([]byte, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	if len(nonce) != cryptoDomain.NonceSize {
		return nil, cryptoDomain.ErrInvalidNonceSize
	}
	if len(tag) != cryptoDomain.TagSize {
		return nil, cryptoDomain.ErrInvalidTagSize
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, cryptoDomain.ErrIntegrityCheckFailed
	}
	return plaintext, nil
}
