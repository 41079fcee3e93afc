package domain

import (
	"math/big"
	"time"
)

// LicenseState is the ledger's license supply for one article. It is only read here;
// buy, burn and regenerate transactions on the ledger are what change it.
type LicenseState struct {
	EditionNumber        uint64
	TotalGenerated       uint64
	ActiveLicenses       uint64
	LastRegenerationTime time.Time
}

// AccessWindow is the ledger's view of a burned-license window.
type AccessWindow struct {
	Active    bool
	ExpiresAt time.Time
}

// LicenseHolding is a reader's unburned license balance for one article.
type LicenseHolding struct {
	Balance uint64
	TokenID string
}

// Transaction is a submitted ledger transaction.
type Transaction struct {
	Hash      string
	ArticleID uint64
	Value     *big.Int
}

// LicenseMarket is the read-only market view for an article.
type LicenseMarket struct {
	ArticleID        uint64
	State            LicenseState
	CurrentPrice     *big.Int
	Holders          []string
	ShouldRegenerate bool
}
