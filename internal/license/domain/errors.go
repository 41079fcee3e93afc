package domain

import (
	"github.com/allisson/paywall/internal/errors"
)

// License error definitions.
var (
	// ErrInvalidGrant indicates a missing or malformed license grant.
	ErrInvalidGrant = errors.Wrap(errors.ErrForbidden, "missing or invalid license token")

	// ErrAccessDenied indicates the reader holds no entitlement for the article.
	ErrAccessDenied = errors.Wrap(errors.ErrForbidden, "no access to article")

	// ErrActivationRequired indicates the reader holds an unburned license that must be
	// burned before the article can be read.
	ErrActivationRequired = errors.Wrap(errors.ErrForbidden, "license requires activation")

	// ErrNothingToActivate indicates a burn was requested without an unburned license.
	ErrNothingToActivate = errors.Wrap(errors.ErrConflict, "no unburned license to activate")

	// ErrAlreadyEntitled indicates a buy was requested by a reader who can already read.
	ErrAlreadyEntitled = errors.Wrap(errors.ErrConflict, "reader already has access")

	// ErrNoLicenseSeller indicates no license holder other than the buyer exists.
	ErrNoLicenseSeller = errors.Wrap(errors.ErrConflict, "no license holder available to sell")

	// ErrLedgerUnavailable indicates a ledger call failed.
	ErrLedgerUnavailable = errors.Wrap(errors.ErrUnavailable, "ledger call failed")
)
