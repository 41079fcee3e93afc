package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// payloadFields is the number of colon-separated fields in the wire format.
const payloadFields = 4

// EncryptedPayload is the decoded form of an encrypted article as it is stored.
//
// Its wire form is "ENCRYPTED_V1:<nonce>:<ciphertext>:<tag>" where the last three fields
// are standard padded base64. The ciphertext field holds the AEAD output with the
// authentication tag split off into its own field.
type EncryptedPayload struct {
	Version    string
	Nonce      []byte
	Ciphertext []byte
	Tag        []byte
}

// IsEncrypted reports whether content carries the supported version prefix. Anything else
// is stored plaintext and is served as-is.
func IsEncrypted(content string) bool {
	return strings.HasPrefix(content, PayloadVersion+":")
}

// ParsePayload decodes the wire form into an EncryptedPayload.
//
// Returns:
//   - ErrInvalidPayloadFormat if content is not exactly four colon-separated fields
//   - ErrUnsupportedPayloadVersion if the version tag is not PayloadVersion
//   - ErrInvalidPayloadBase64 if any binary field fails to decode
//
// Field lengths are not checked here; the cipher validates them before opening.
func ParsePayload(content string) (EncryptedPayload, error) {
	parts := strings.Split(content, ":")
	if len(parts) != payloadFields {
		return EncryptedPayload{}, fmt.Errorf(
			"%w: expected %d fields, got %d",
			ErrInvalidPayloadFormat,
			payloadFields,
			len(parts),
		)
	}

	if parts[0] != PayloadVersion {
		return EncryptedPayload{}, fmt.Errorf("%w: %q", ErrUnsupportedPayloadVersion, parts[0])
	}

	decoded := make([][]byte, 0, payloadFields-1)
	for i, field := range parts[1:] {
		b, err := base64.StdEncoding.DecodeString(field)
		if err != nil {
			return EncryptedPayload{}, fmt.Errorf("%w: field %d: %v", ErrInvalidPayloadBase64, i+1, err)
		}
		decoded = append(decoded, b)
	}

	return EncryptedPayload{
		Version:    parts[0],
		Nonce:      decoded[0],
		Ciphertext: decoded[1],
		Tag:        decoded[2],
	}, nil
}

// String serializes the payload to its wire form.
func (p EncryptedPayload) String() string {
	version := p.Version
	if version == "" {
		version = PayloadVersion
	}
	return strings.Join([]string{
		version,
		base64.StdEncoding.EncodeToString(p.Nonce),
		base64.StdEncoding.EncodeToString(p.Ciphertext),
		base64.StdEncoding.EncodeToString(p.Tag),
	}, ":")
}

// EncodedLen returns the exact wire length of a payload sealing plaintextLen bytes.
// ChaCha20-Poly1305 ciphertext has the same length as the plaintext.
func EncodedLen(plaintextLen int) int {
	if plaintextLen < 0 {
		plaintextLen = 0
	}
	return len(PayloadVersion) +
		payloadFields - 1 +
		base64.StdEncoding.EncodedLen(NonceSize) +
		base64.StdEncoding.EncodedLen(plaintextLen) +
		base64.StdEncoding.EncodedLen(TagSize)
}
