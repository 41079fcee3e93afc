package usecase

import (
	"context"

	contentDomain "github.com/allisson/paywall/internal/content/domain"
	licenseDomain "github.com/allisson/paywall/internal/license/domain"
)

// ArticleContentRepository persists sealed payloads.
type ArticleContentRepository interface {
	Upsert(ctx context.Context, content *contentDomain.ArticleContent) error
	Get(ctx context.Context, articleID uint64) (*contentDomain.ArticleContent, error)
	Delete(ctx context.Context, articleID uint64) error
}

// ContentCache holds decrypted articles keyed by reader and article.
type ContentCache interface {
	Get(key string) (*contentDomain.CacheEntry, bool)
	Set(key string, entry contentDomain.CacheEntry)
	Clear()
	EvictReader(readerAddress string) int
}

// AccessResolver classifies a reader's access to an article.
type AccessResolver interface {
	GetAccessDetails(ctx context.Context, articleID uint64, reader string) (*licenseDomain.AccessRecord, error)
}

// EncryptionUseCase seals article text on the publish path.
type EncryptionUseCase interface {
	EncryptArticle(
		ctx context.Context,
		plaintext string,
		params contentDomain.EncryptParams,
	) (*contentDomain.EncryptResult, error)

	// EstimateEncryptedSize returns the exact wire length for a plaintext of the given byte length.
	EstimateEncryptedSize(plaintextLen int) int

	// PredictNextArticleID guesses the id the ledger will assign next. The result is always
	// provisional.
	PredictNextArticleID(ctx context.Context) (*contentDomain.ArticleIDPrediction, error)
}

// DecryptionUseCase recovers article text on the read path.
type DecryptionUseCase interface {
	// DecryptArticle returns cached text when present, otherwise requires a grant,
	// resolves the publisher, derives the key and opens the payload.
	//
	// Security Note: callers must run the access check before calling this.
	DecryptArticle(ctx context.Context, input contentDomain.DecryptInput) (*contentDomain.DecryptResult, error)

	ClearCache()

	// EvictReader drops the reader's cached articles, as on wallet disconnect.
	EvictReader(readerAddress string) int
}

// ArticleContentUseCase stores sealed articles and serves them to entitled readers.
type ArticleContentUseCase interface {
	Publish(
		ctx context.Context,
		plaintext string,
		params contentDomain.EncryptParams,
	) (*contentDomain.EncryptResult, error)

	// Read checks access on the ledger first and only then decrypts the stored payload.
	Read(ctx context.Context, articleID uint64, reader string) (*contentDomain.ReadResult, error)

	Delete(ctx context.Context, articleID uint64) error
}
