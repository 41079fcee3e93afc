// Package domain defines the license access model: the four access tiers, the grant that
// entitles a reader to decrypt, and the purchase state machine.
package domain

import (
	"time"
)

// AccessType classifies how a reader is entitled to an article.
type AccessType string

const (
	// AccessTypeNFTOwner is permanent access through ownership of the article collectible.
	AccessTypeNFTOwner AccessType = "nft_owner"

	// AccessTypeReaderLicense is access through a license, either already burned into a
	// time-boxed window or still waiting for activation.
	AccessTypeReaderLicense AccessType = "reader_license"

	// AccessTypeNone means the reader must purchase a license.
	AccessTypeNone AccessType = "none"
)

// AccessRecord is the result of one access classification. It is computed from the ledger
// on every query and never stored.
type AccessRecord struct {
	ArticleID       uint64
	ReaderAddress   string
	HasAccess       bool
	AccessType      AccessType
	Grant           *Grant
	ExpiryTime      *time.Time
	NeedsActivation bool
}

// TokenID returns the grant's token id, or an empty string when there is no grant.
func (r *AccessRecord) TokenID() string {
	if r == nil || r.Grant == nil {
		return ""
	}
	return r.Grant.TokenID()
}

// PurchaseState derives the position in the purchase flow from this record.
func (r *AccessRecord) PurchaseState() PurchaseState {
	switch {
	case r == nil:
		return PurchaseStateUnowned
	case r.AccessType == AccessTypeNFTOwner:
		return PurchaseStateOwned
	case r.AccessType == AccessTypeReaderLicense && r.NeedsActivation:
		return PurchaseStatePurchased
	case r.AccessType == AccessTypeReaderLicense:
		return PurchaseStateActivated
	default:
		return PurchaseStateUnowned
	}
}

// NoAccess builds the fail-closed record.
func NoAccess(articleID uint64, readerAddress string) *AccessRecord {
	return &AccessRecord{
		ArticleID:     articleID,
		ReaderAddress: readerAddress,
		AccessType:    AccessTypeNone,
	}
}
