// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/paywall/internal/crypto/domain"
	apperrors "github.com/allisson/paywall/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// EthAddress validates a 0x-prefixed 40 hex digit account address.
var EthAddress = validation.NewStringRuleWithError(
	func(s string) bool {
		return cryptoDomain.ValidateAddress(s) == nil
	},
	validation.NewError("validation_eth_address", "must be a 0x-prefixed 40 hex digit address"),
)

// EncryptedPayload validates that a string is an ENCRYPTED_V1 wire payload.
var EncryptedPayload = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := cryptoDomain.ParsePayload(s)
		return err == nil
	},
	validation.NewError("validation_encrypted_payload", "must be an ENCRYPTED_V1 payload"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
