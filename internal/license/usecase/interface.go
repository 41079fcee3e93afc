package usecase

import (
	"context"
	"math/big"

	licenseDomain "github.com/allisson/paywall/internal/license/domain"
)

// AccessUseCase resolves reader entitlements and drives license purchases.
type AccessUseCase interface {
	// GetAccessDetails classifies the reader's access in priority order: collectible owner,
	// active burned license, unburned license awaiting activation, none. Ledger failures
	// yield a no-access record; only invalid input is returned as an error.
	GetAccessDetails(ctx context.Context, articleID uint64, reader string) (*licenseDomain.AccessRecord, error)

	// BuyLicense pays the current price plus gas reimbursement to transfer a license to the
	// buyer. An empty seller selects the first license holder other than the buyer. Buyers
	// who can already read or activate get ErrAlreadyEntitled; ledger read failures are
	// returned rather than treated as no access.
	BuyLicense(ctx context.Context, articleID uint64, buyer, seller string) (*licenseDomain.Transaction, error)

	BurnLicenseForAccess(ctx context.Context, articleID uint64, reader string) (*licenseDomain.Transaction, error)

	// Purchase advances the reader through buy and burn until the article is readable.
	Purchase(ctx context.Context, articleID uint64, reader, seller string) (*licenseDomain.PurchaseResult, error)

	GetLicenseState(ctx context.Context, articleID uint64) (*licenseDomain.LicenseState, error)
	CurrentPrice(ctx context.Context, articleID uint64) (*big.Int, error)
	GetLicenseMarket(ctx context.Context, articleID uint64) (*licenseDomain.LicenseMarket, error)
	ShouldRegenerate(ctx context.Context, articleID uint64) (bool, error)
	Regenerate(ctx context.Context, articleID uint64) (*licenseDomain.Transaction, error)
}
