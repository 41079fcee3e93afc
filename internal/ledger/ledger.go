// Package ledger provides access to the on-chain article registry and license market.
//
// The service never computes prices or license supply itself. Every read goes through an
// ArticleReader or LicenseLedger, and every state change is a submitted transaction. Two
// drivers exist: an HTTP gateway client for deployments and an in-memory ledger for local
// development and tests.
package ledger

import (
	"context"
	"math/big"
	"time"

	"github.com/allisson/paywall/internal/errors"
	licenseDomain "github.com/allisson/paywall/internal/license/domain"
)

// Ledger error definitions.
var (
	// ErrArticleNotFound indicates the ledger has no record for the article.
	ErrArticleNotFound = errors.Wrap(errors.ErrNotFound, "article not found on ledger")

	// ErrInsufficientPayment indicates a buy transaction paid less than the current price.
	ErrInsufficientPayment = errors.Wrap(errors.ErrInvalidInput, "payment below current license price")

	// ErrNoUnburnedLicense indicates the account holds no license that can be transferred or burned.
	ErrNoUnburnedLicense = errors.Wrap(errors.ErrConflict, "account holds no unburned license")
)

// Article is the registry record for a published article.
type Article struct {
	ID                 uint64
	Author             string
	Title              string
	Summary            string
	Category           string
	Location           string
	PublishedAt        time.Time
	NFTCount           uint64
	NFTPrice           *big.Int
	ReaderLicenseRatio uint64
}

// ArticleReader reads the article registry.
type ArticleReader interface {
	// GetArticle reads the canonical article record.
	GetArticle(ctx context.Context, articleID uint64) (*Article, error)

	// GetArticleRecord reads the raw storage record. Older registry deployments populate
	// it even when the canonical read returns an empty author.
	GetArticleRecord(ctx context.Context, articleID uint64) (*Article, error)

	ArticleCount(ctx context.Context) (uint64, error)
}

// LicenseLedger reads and transacts on the license market.
type LicenseLedger interface {
	NFTBalance(ctx context.Context, articleID uint64, owner string) (uint64, error)
	ActiveAccess(ctx context.Context, articleID uint64, reader string) (*licenseDomain.AccessWindow, error)
	UnburnedLicenses(ctx context.Context, articleID uint64, reader string) (*licenseDomain.LicenseHolding, error)
	CurrentPrice(ctx context.Context, articleID uint64) (*big.Int, error)
	LicenseHolders(ctx context.Context, articleID uint64) ([]string, error)
	LicenseState(ctx context.Context, articleID uint64) (*licenseDomain.LicenseState, error)

	// Buy transfers one license from seller to buyer. value must cover the current price.
	Buy(ctx context.Context, articleID uint64, buyer, seller string, value *big.Int) (*licenseDomain.Transaction, error)

	// BurnForAccess burns one of the reader's licenses and opens a time-boxed access window.
	BurnForAccess(ctx context.Context, articleID uint64, reader string) (*licenseDomain.Transaction, error)

	ShouldRegenerate(ctx context.Context, articleID uint64) (bool, error)
	Regenerate(ctx context.Context, articleID uint64) (*licenseDomain.Transaction, error)
}
