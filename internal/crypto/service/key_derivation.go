package service

import (
	"crypto/sha256"
	"strconv"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/allisson/paywall/internal/crypto/domain"
)

// PBKDF2KeyDerivation implements KeyDerivation with PBKDF2-HMAC-SHA256.
//
// The salt is public and fixed per deployment. Anyone who knows the publisher address,
// article id and token id can derive the key; the access check in front of the decrypt
// path is what keeps content private.
type PBKDF2KeyDerivation struct {
	salt       []byte
	iterations int
}

// NewPBKDF2KeyDerivation creates a key derivation service. An empty salt selects
// cryptoDomain.DefaultKDFSalt.
func NewPBKDF2KeyDerivation(salt string) *PBKDF2KeyDerivation {
	if salt == "" {
		salt = cryptoDomain.DefaultKDFSalt
	}
	return &PBKDF2KeyDerivation{
		salt:       []byte(salt),
		iterations: cryptoDomain.KDFIterations,
	}
}

// DeriveKey validates params and derives the 32-byte article key.
func (k *PBKDF2KeyDerivation) DeriveKey(params cryptoDomain.KeyMaterialParams) ([]byte, error) {
	if err := k.ValidateParams(params); err != nil {
		return nil, err
	}
	return pbkdf2.Key([]byte(params.Material()), k.salt, k.iterations, cryptoDomain.KeySize, sha256.New), nil
}

// ValidateParams checks that every field is present and the owner address is canonical.
func (k *PBKDF2KeyDerivation) ValidateParams(params cryptoDomain.KeyMaterialParams) error {
	return params.Validate()
}

// CacheKey returns "<lowercased reader address>:<article id>".
func (k *PBKDF2KeyDerivation) CacheKey(readerAddress string, articleID uint64) string {
	return cryptoDomain.NormalizeAddress(readerAddress) + ":" + strconv.FormatUint(articleID, 10)
}
