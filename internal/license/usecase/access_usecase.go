// Package usecase resolves reader access against the license ledger and drives the
// two-phase purchase flow.
package usecase

import (
	"context"
	"log/slog"
	"math/big"

	cryptoDomain "github.com/allisson/paywall/internal/crypto/domain"
	apperrors "github.com/allisson/paywall/internal/errors"
	"github.com/allisson/paywall/internal/ledger"
	licenseDomain "github.com/allisson/paywall/internal/license/domain"
)

// Config holds license use case configuration.
type Config struct {
	// GasReimbursement is added to the license price on every buy, in wei.
	GasReimbursement *big.Int
}

type accessUseCase struct {
	config Config
	ledger ledger.LicenseLedger
	logger *slog.Logger
}

// NewAccessUseCase creates an AccessUseCase backed by the license ledger.
func NewAccessUseCase(config Config, licenseLedger ledger.LicenseLedger, logger *slog.Logger) AccessUseCase {
	if config.GasReimbursement == nil {
		config.GasReimbursement = big.NewInt(0)
	}
	return &accessUseCase{
		config: config,
		ledger: licenseLedger,
		logger: logger,
	}
}

// GetAccessDetails classifies the reader's access to the article. A ledger failure denies
// access instead of returning an error.
func (a *accessUseCase) GetAccessDetails(
	ctx context.Context,
	articleID uint64,
	reader string,
) (*licenseDomain.AccessRecord, error) {
	if err := validateRequest(articleID, reader); err != nil {
		return nil, err
	}
	reader = cryptoDomain.NormalizeAddress(reader)

	record, step, err := a.classify(ctx, articleID, reader)
	if err != nil {
		return a.failClosed(articleID, reader, step, err), nil
	}
	return record, nil
}

// classify reads the reader's entitlements in priority order. Unlike GetAccessDetails it
// returns ledger failures, along with the step that failed, so callers about to move funds
// never act on an unknown state.
func (a *accessUseCase) classify(
	ctx context.Context,
	articleID uint64,
	reader string,
) (*licenseDomain.AccessRecord, string, error) {
	nftBalance, err := a.ledger.NFTBalance(ctx, articleID, reader)
	if err != nil {
		return nil, "nft_balance", wrapLedgerError(err)
	}
	if nftBalance > 0 {
		grant := licenseDomain.OwnershipGrant(articleID, reader)
		return &licenseDomain.AccessRecord{
			ArticleID:     articleID,
			ReaderAddress: reader,
			HasAccess:     true,
			AccessType:    licenseDomain.AccessTypeNFTOwner,
			Grant:         &grant,
		}, "", nil
	}

	window, err := a.ledger.ActiveAccess(ctx, articleID, reader)
	if err != nil {
		return nil, "active_access", wrapLedgerError(err)
	}
	if window.Active {
		grant := licenseDomain.BurnedGrant(articleID, reader)
		record := &licenseDomain.AccessRecord{
			ArticleID:     articleID,
			ReaderAddress: reader,
			HasAccess:     true,
			AccessType:    licenseDomain.AccessTypeReaderLicense,
			Grant:         &grant,
		}
		if !window.ExpiresAt.IsZero() {
			expiresAt := window.ExpiresAt
			record.ExpiryTime = &expiresAt
		}
		return record, "", nil
	}

	holding, err := a.ledger.UnburnedLicenses(ctx, articleID, reader)
	if err != nil {
		return nil, "unburned_licenses", wrapLedgerError(err)
	}
	if holding.Balance > 0 {
		grant := licenseDomain.RealLicense(articleID, holding.TokenID)
		return &licenseDomain.AccessRecord{
			ArticleID:       articleID,
			ReaderAddress:   reader,
			AccessType:      licenseDomain.AccessTypeReaderLicense,
			Grant:           &grant,
			NeedsActivation: true,
		}, "", nil
	}

	return licenseDomain.NoAccess(articleID, reader), "", nil
}

// BuyLicense transfers one license to the buyer. Buyers who own the collectible, hold an
// open window or hold an unburned license are refused with ErrAlreadyEntitled.
func (a *accessUseCase) BuyLicense(
	ctx context.Context,
	articleID uint64,
	buyer, seller string,
) (*licenseDomain.Transaction, error) {
	if err := validateRequest(articleID, buyer); err != nil {
		return nil, err
	}
	buyer = cryptoDomain.NormalizeAddress(buyer)

	record, _, err := a.classify(ctx, articleID, buyer)
	if err != nil {
		return nil, err
	}
	if state := record.PurchaseState(); !state.CanBuy() {
		return nil, apperrors.Wrapf(licenseDomain.ErrAlreadyEntitled, "reader is in state %s", state)
	}

	return a.buy(ctx, articleID, buyer, seller)
}

func (a *accessUseCase) buy(
	ctx context.Context,
	articleID uint64,
	buyer, seller string,
) (*licenseDomain.Transaction, error) {
	if seller == "" {
		selected, err := a.selectSeller(ctx, articleID, buyer)
		if err != nil {
			return nil, err
		}
		seller = selected
	} else if err := cryptoDomain.ValidateAddress(seller); err != nil {
		return nil, err
	}
	seller = cryptoDomain.NormalizeAddress(seller)

	price, err := a.ledger.CurrentPrice(ctx, articleID)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	value := new(big.Int).Add(price, a.config.GasReimbursement)

	tx, err := a.ledger.Buy(ctx, articleID, buyer, seller, value)
	if err != nil {
		return nil, wrapLedgerError(err)
	}

	if a.logger != nil {
		a.logger.Info("license purchased",
			slog.Uint64("article_id", articleID),
			slog.String("buyer", buyer),
			slog.String("seller", seller),
			slog.String("value_wei", value.String()),
			slog.String("tx_hash", tx.Hash),
		)
	}
	return tx, nil
}

// BurnLicenseForAccess burns one of the reader's licenses to open an access window.
func (a *accessUseCase) BurnLicenseForAccess(
	ctx context.Context,
	articleID uint64,
	reader string,
) (*licenseDomain.Transaction, error) {
	if err := validateRequest(articleID, reader); err != nil {
		return nil, err
	}
	reader = cryptoDomain.NormalizeAddress(reader)

	holding, err := a.ledger.UnburnedLicenses(ctx, articleID, reader)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	if holding.Balance == 0 {
		return nil, licenseDomain.ErrNothingToActivate
	}

	tx, err := a.ledger.BurnForAccess(ctx, articleID, reader)
	if err != nil {
		return nil, wrapLedgerError(err)
	}

	if a.logger != nil {
		a.logger.Info("license burned for access",
			slog.Uint64("article_id", articleID),
			slog.String("reader", reader),
			slog.String("tx_hash", tx.Hash),
		)
	}
	return tx, nil
}

// Purchase drives Unowned -> Purchased -> Activated. The state is re-read from the ledger
// before each step so an interrupted flow resumes where it stopped. A failed read stops
// the flow with an error; no transaction is submitted on an unknown state.
func (a *accessUseCase) Purchase(
	ctx context.Context,
	articleID uint64,
	reader, seller string,
) (*licenseDomain.PurchaseResult, error) {
	if err := validateRequest(articleID, reader); err != nil {
		return nil, err
	}
	reader = cryptoDomain.NormalizeAddress(reader)

	result := &licenseDomain.PurchaseResult{}
	var bought, burned bool

	for {
		record, _, err := a.classify(ctx, articleID, reader)
		if err != nil {
			return result, err
		}
		result.Access = record
		result.State = record.PurchaseState()

		switch {
		case result.State.IsTerminal():
			return result, nil
		case result.State.CanBuy() && !bought:
			tx, err := a.buy(ctx, articleID, reader, seller)
			if err != nil {
				return result, err
			}
			result.Transactions = append(result.Transactions, tx)
			bought = true
		case result.State.CanActivate() && !burned:
			tx, err := a.BurnLicenseForAccess(ctx, articleID, reader)
			if err != nil {
				return result, err
			}
			result.Transactions = append(result.Transactions, tx)
			burned = true
		default:
			// A submitted transaction is not reflected by the ledger yet.
			return result, apperrors.Wrapf(
				licenseDomain.ErrLedgerUnavailable,
				"purchase stuck in state %s",
				result.State,
			)
		}
	}
}

// GetLicenseState reads the license supply.
func (a *accessUseCase) GetLicenseState(
	ctx context.Context,
	articleID uint64,
) (*licenseDomain.LicenseState, error) {
	if articleID == 0 {
		return nil, cryptoDomain.ErrMissingArticleID
	}
	state, err := a.ledger.LicenseState(ctx, articleID)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	return state, nil
}

// CurrentPrice reads the license price in wei.
func (a *accessUseCase) CurrentPrice(ctx context.Context, articleID uint64) (*big.Int, error) {
	if articleID == 0 {
		return nil, cryptoDomain.ErrMissingArticleID
	}
	price, err := a.ledger.CurrentPrice(ctx, articleID)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	return price, nil
}

// GetLicenseMarket combines supply, price, holders and regeneration status.
func (a *accessUseCase) GetLicenseMarket(
	ctx context.Context,
	articleID uint64,
) (*licenseDomain.LicenseMarket, error) {
	state, err := a.GetLicenseState(ctx, articleID)
	if err != nil {
		return nil, err
	}
	price, err := a.CurrentPrice(ctx, articleID)
	if err != nil {
		return nil, err
	}
	holders, err := a.ledger.LicenseHolders(ctx, articleID)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	should, err := a.ShouldRegenerate(ctx, articleID)
	if err != nil {
		return nil, err
	}

	return &licenseDomain.LicenseMarket{
		ArticleID:        articleID,
		State:            *state,
		CurrentPrice:     price,
		Holders:          holders,
		ShouldRegenerate: should,
	}, nil
}

// ShouldRegenerate asks the ledger whether a new license edition is due.
func (a *accessUseCase) ShouldRegenerate(ctx context.Context, articleID uint64) (bool, error) {
	if articleID == 0 {
		return false, cryptoDomain.ErrMissingArticleID
	}
	should, err := a.ledger.ShouldRegenerate(ctx, articleID)
	if err != nil {
		return false, wrapLedgerError(err)
	}
	return should, nil
}

// Regenerate submits a regeneration transaction.
func (a *accessUseCase) Regenerate(ctx context.Context, articleID uint64) (*licenseDomain.Transaction, error) {
	if articleID == 0 {
		return nil, cryptoDomain.ErrMissingArticleID
	}
	tx, err := a.ledger.Regenerate(ctx, articleID)
	if err != nil {
		return nil, wrapLedgerError(err)
	}

	if a.logger != nil {
		a.logger.Info("license supply regenerated",
			slog.Uint64("article_id", articleID),
			slog.String("tx_hash", tx.Hash),
		)
	}
	return tx, nil
}

func (a *accessUseCase) selectSeller(ctx context.Context, articleID uint64, buyer string) (string, error) {
	holders, err := a.ledger.LicenseHolders(ctx, articleID)
	if err != nil {
		return "", wrapLedgerError(err)
	}
	for _, holder := range holders {
		if cryptoDomain.NormalizeAddress(holder) != buyer {
			return holder, nil
		}
	}
	return "", licenseDomain.ErrNoLicenseSeller
}

func (a *accessUseCase) failClosed(
	articleID uint64,
	reader string,
	step string,
	err error,
) *licenseDomain.AccessRecord {
	if a.logger != nil {
		a.logger.Warn("access check failed, denying access",
			slog.Uint64("article_id", articleID),
			slog.String("reader", reader),
			slog.String("step", step),
			slog.Any("error", err),
		)
	}
	return licenseDomain.NoAccess(articleID, reader)
}

func validateRequest(articleID uint64, reader string) error {
	if articleID == 0 {
		return cryptoDomain.ErrMissingArticleID
	}
	return cryptoDomain.ValidateAddress(reader)
}
