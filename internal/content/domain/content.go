// Package domain defines the encrypted article content model.
package domain

import (
	"time"

	cryptoDomain "github.com/allisson/paywall/internal/crypto/domain"
	licenseDomain "github.com/allisson/paywall/internal/license/domain"
)

// EncryptParams identifies who publishes which article.
type EncryptParams struct {
	PublisherAddress string
	ArticleID        uint64

	// LicenseTokenID is mixed into key derivation. Empty selects the unbound id, which is
	// what every reader grant derives with.
	LicenseTokenID string
}

// EncryptMetadata describes a sealed payload.
type EncryptMetadata struct {
	ArticleID        uint64
	PublisherAddress string
	PayloadVersion   string
	Algorithm        cryptoDomain.Algorithm
	PlaintextSize    int
	PayloadSize      int
	EncryptedAt      time.Time
}

// EncryptResult is a sealed article ready for storage.
type EncryptResult struct {
	Payload  string
	Metadata EncryptMetadata
}

// DecryptInput is everything the decrypt path needs for one reader.
type DecryptInput struct {
	Payload       string
	ReaderAddress string
	ArticleID     uint64
	Grant         *licenseDomain.Grant
}

// DecryptResult is the recovered article text.
type DecryptResult struct {
	Plaintext string
	Cached    bool
}

// CacheEntry is one decrypted article held for a reader.
type CacheEntry struct {
	Plaintext     string
	Timestamp     time.Time
	ArticleID     uint64
	ReaderAddress string
}

// ArticleContent is a sealed article as persisted in the content store.
type ArticleContent struct {
	ArticleID        uint64
	PublisherAddress string
	Payload          string
	PayloadVersion   string
	PlaintextSize    int
	PayloadSize      int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ArticleIDPrediction is the id a new article is expected to receive. It is always
// provisional: the ledger assigns the final id when the article is registered.
type ArticleIDPrediction struct {
	ArticleID   uint64
	Provisional bool
	Source      string
}

// Prediction sources.
const (
	PredictionSourceLedger    = "ledger"
	PredictionSourceTimestamp = "timestamp"
)

// ReadResult pairs the access decision with the article text when access was granted.
type ReadResult struct {
	Access  *licenseDomain.AccessRecord
	Content *DecryptResult
}
