// Package domain defines the content-encryption domain: the versioned wire format,
// key material parameters, and the size constants shared by the cipher and the
// key derivation services.
package domain

// Algorithm represents the authenticated encryption algorithm bound to a payload version.
type Algorithm string

const (
	// ChaCha20 is the ChaCha20-Poly1305 AEAD construction used by ENCRYPTED_V1 payloads.
	//
	// Key features:
	//   - 256-bit key size
	//   - 12-byte nonce (96 bits)
	//   - 16-byte authentication tag appended by the seal operation
	ChaCha20 Algorithm = "chacha20-poly1305"
)

const (
	// PayloadVersion is the only wire format version this service reads and writes.
	PayloadVersion = "ENCRYPTED_V1"

	// PayloadAlgorithm is the algorithm used by PayloadVersion.
	PayloadAlgorithm = ChaCha20

	// KeySize is the symmetric key length in bytes.
	KeySize = 32

	// NonceSize is the AEAD nonce length in bytes.
	NonceSize = 12

	// TagSize is the AEAD authentication tag length in bytes.
	TagSize = 16

	// UnboundTokenID is the license token id used for content that is not bound to a
	// specific license instance. Articles are encrypted at publish time, before any
	// license exists, so both sides of the protocol derive keys with this value.
	UnboundTokenID = "0"

	// KDFIterations is the PBKDF2-HMAC-SHA256 iteration count.
	KDFIterations = 100000

	// DefaultKDFSalt is the public salt mixed into every key derivation. It is not a
	// secret: confidentiality rests on the access check that guards the key material.
	DefaultKDFSalt = "paywall-article-kdf-v1"
)
