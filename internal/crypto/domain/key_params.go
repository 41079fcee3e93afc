package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// ZeroAddress is what a ledger returns for an unset address field.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

var addressRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// KeyMaterialParams identifies the key protecting one article.
//
// OwnerAddress is always the publisher's address, on both the publish and the read path.
// Any party that knows the triple can re-derive the key, so no key distribution is needed.
type KeyMaterialParams struct {
	OwnerAddress   string
	ArticleID      uint64
	LicenseTokenID string
}

// Validate checks that every field is present and the address is well formed.
func (p KeyMaterialParams) Validate() error {
	if strings.TrimSpace(p.OwnerAddress) == "" {
		return ErrMissingOwnerAddress
	}
	if err := ValidateAddress(p.OwnerAddress); err != nil {
		return err
	}
	if p.ArticleID == 0 {
		return ErrMissingArticleID
	}
	if strings.TrimSpace(p.LicenseTokenID) == "" {
		return ErrMissingLicenseTokenID
	}
	return nil
}

// Material returns the KDF input "<lowercased address>:<article id>:<token id>".
func (p KeyMaterialParams) Material() string {
	return NormalizeAddress(p.OwnerAddress) + ":" + strconv.FormatUint(p.ArticleID, 10) + ":" + p.LicenseTokenID
}

// ValidateAddress checks the canonical 0x-prefixed 40 hex digit form.
func ValidateAddress(address string) error {
	if !addressRegex.MatchString(address) {
		return ErrInvalidAddress
	}
	return nil
}

// NormalizeAddress lowercases an address so mixed-case checksummed forms derive the same key.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// IsZeroAddress reports whether address is the all-zero address.
func IsZeroAddress(address string) bool {
	return NormalizeAddress(address) == ZeroAddress
}
