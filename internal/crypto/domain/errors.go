package domain

import (
	"github.com/allisson/paywall/internal/errors"
)

// Parameter errors.
var (
	// ErrInvalidKeySize indicates the key is not KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidNonceSize indicates the nonce is not NonceSize bytes.
	ErrInvalidNonceSize = errors.Wrap(errors.ErrInvalidInput, "invalid nonce size")

	// ErrInvalidTagSize indicates the authentication tag is not TagSize bytes.
	ErrInvalidTagSize = errors.Wrap(errors.ErrInvalidInput, "invalid authentication tag size")

	// ErrInvalidAddress indicates an address is not a 0x-prefixed 40 hex digit string.
	ErrInvalidAddress = errors.Wrap(errors.ErrInvalidInput, "invalid address")

	// ErrMissingOwnerAddress indicates the publisher address is empty.
	ErrMissingOwnerAddress = errors.Wrap(errors.ErrInvalidInput, "owner address is required")

	// ErrMissingArticleID indicates the article id is zero.
	ErrMissingArticleID = errors.Wrap(errors.ErrInvalidInput, "article id is required")

	// ErrMissingLicenseTokenID indicates the license token id is empty.
	ErrMissingLicenseTokenID = errors.Wrap(errors.ErrInvalidInput, "license token id is required")
)

// Format errors.
var (
	// ErrInvalidPayloadFormat indicates the payload does not have exactly four fields.
	ErrInvalidPayloadFormat = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted payload format")

	// ErrUnsupportedPayloadVersion indicates the version tag is not PayloadVersion.
	ErrUnsupportedPayloadVersion = errors.Wrap(errors.ErrInvalidInput, "unsupported encrypted payload version")

	// ErrInvalidPayloadBase64 indicates a payload field is not valid base64.
	ErrInvalidPayloadBase64 = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted payload base64")
)

// ErrIntegrityCheckFailed indicates AEAD authentication failed. The wrong key produces the
// same error as a modified ciphertext, so callers cannot tell them apart.
var ErrIntegrityCheckFailed = errors.Wrap(
	errors.ErrIntegrity,
	"decryption failed: content may be corrupted or tampered with",
)
