package domain

import (
	"github.com/allisson/paywall/internal/errors"
)

// Content error definitions.
var (
	// ErrEmptyPlaintext indicates there is no article text to encrypt.
	ErrEmptyPlaintext = errors.Wrap(errors.ErrInvalidInput, "article content is empty")

	// ErrMissingLicense indicates decryption was requested without a license grant.
	ErrMissingLicense = errors.Wrap(errors.ErrForbidden, "missing or invalid license token")

	// ErrPublisherNotFound indicates no resolver could find the article publisher.
	ErrPublisherNotFound = errors.Wrap(errors.ErrNotFound, "publisher not found")

	// ErrPublisherMismatch indicates a publish under an address other than the article's
	// ledger author. Readers derive keys from the ledger author and could never open it.
	ErrPublisherMismatch = errors.Wrap(errors.ErrInvalidInput, "publisher does not match article author")

	// ErrContentNotFound indicates the content store has no payload for the article.
	ErrContentNotFound = errors.Wrap(errors.ErrNotFound, "article content not found")

	// ErrArticleIDMismatch indicates the grant belongs to another article.
	ErrArticleIDMismatch = errors.Wrap(errors.ErrForbidden, "license grant is for a different article")
)
