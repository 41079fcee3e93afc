package usecase

import (
	apperrors "github.com/allisson/paywall/internal/errors"
	licenseDomain "github.com/allisson/paywall/internal/license/domain"
)

// wrapLedgerError keeps classified ledger errors and marks the rest as ledger failures.
func wrapLedgerError(err error) error {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound),
		apperrors.Is(err, apperrors.ErrInvalidInput),
		apperrors.Is(err, apperrors.ErrConflict),
		apperrors.Is(err, apperrors.ErrUnavailable):
		return err
	default:
		return apperrors.Wrapf(licenseDomain.ErrLedgerUnavailable, "%v", err)
	}
}
