package domain

import (
	"fmt"
	"strings"

	cryptoDomain "github.com/allisson/paywall/internal/crypto/domain"
)

// GrantKind tags the variant held by a Grant.
type GrantKind string

const (
	// GrantKindRealLicense is an unburned license identified by its ledger token id.
	GrantKindRealLicense GrantKind = "real_license"

	// GrantKindOwnership is access through owning the article collectible.
	GrantKindOwnership GrantKind = "ownership"

	// GrantKindBurned is a time-boxed window opened by burning a license. The license
	// token no longer exists on the ledger once burned.
	GrantKindBurned GrantKind = "burned"
)

// readerSuffixLen is the number of trailing address characters used in burned token ids.
const readerSuffixLen = 6

// Grant is the entitlement a reader presents to the decrypt path.
type Grant struct {
	Kind          GrantKind
	ArticleID     uint64
	ReaderAddress string
	LedgerTokenID string
}

// RealLicense builds a grant for an unburned ledger license.
func RealLicense(articleID uint64, tokenID string) Grant {
	return Grant{Kind: GrantKindRealLicense, ArticleID: articleID, LedgerTokenID: tokenID}
}

// OwnershipGrant builds a grant for a collectible owner.
func OwnershipGrant(articleID uint64, readerAddress string) Grant {
	return Grant{Kind: GrantKindOwnership, ArticleID: articleID, ReaderAddress: readerAddress}
}

// BurnedGrant builds a grant for an active burned-license window.
func BurnedGrant(articleID uint64, readerAddress string) Grant {
	return Grant{Kind: GrantKindBurned, ArticleID: articleID, ReaderAddress: readerAddress}
}

// Validate checks that the variant carries the fields it needs.
func (g Grant) Validate() error {
	if g.ArticleID == 0 {
		return ErrInvalidGrant
	}
	switch g.Kind {
	case GrantKindRealLicense:
		if strings.TrimSpace(g.LedgerTokenID) == "" {
			return ErrInvalidGrant
		}
	case GrantKindOwnership, GrantKindBurned:
		if cryptoDomain.ValidateAddress(g.ReaderAddress) != nil {
			return ErrInvalidGrant
		}
	default:
		return ErrInvalidGrant
	}
	return nil
}

// TokenID is the display token id reported to callers. Only RealLicense carries a
// ledger id; the other variants build a descriptive id.
func (g Grant) TokenID() string {
	switch g.Kind {
	case GrantKindRealLicense:
		return g.LedgerTokenID
	case GrantKindOwnership:
		return fmt.Sprintf("nft_owner_%d", g.ArticleID)
	case GrantKindBurned:
		return fmt.Sprintf("burned_license_%d_%s", g.ArticleID, readerSuffix(g.ReaderAddress))
	default:
		return ""
	}
}

// KeyTokenID is the license token id mixed into key derivation. Articles are sealed at
// publish time, before any license exists, so every variant maps to the unbound id.
func (g Grant) KeyTokenID() (string, error) {
	switch g.Kind {
	case GrantKindRealLicense, GrantKindOwnership, GrantKindBurned:
		return cryptoDomain.UnboundTokenID, nil
	default:
		return "", ErrInvalidGrant
	}
}

func readerSuffix(address string) string {
	normalized := cryptoDomain.NormalizeAddress(address)
	if len(normalized) <= readerSuffixLen {
		return normalized
	}
	return normalized[len(normalized)-readerSuffixLen:]
}
