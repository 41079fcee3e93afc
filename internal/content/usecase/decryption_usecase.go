package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	contentDomain "github.com/allisson/paywall/internal/content/domain"
	"github.com/allisson/paywall/internal/content/service"
	cryptoDomain "github.com/allisson/paywall/internal/crypto/domain"
	cryptoService "github.com/allisson/paywall/internal/crypto/service"
	apperrors "github.com/allisson/paywall/internal/errors"
)

type decryptionUseCase struct {
	cipher    cryptoService.SymmetricCipher
	kdf       cryptoService.KeyDerivation
	resolver  service.PublisherResolver
	cache     ContentCache
	derivings singleflight.Group
	logger    *slog.Logger
}

// NewDecryptionUseCase creates a DecryptionUseCase over an explicit cache instance.
func NewDecryptionUseCase(
	cipher cryptoService.SymmetricCipher,
	kdf cryptoService.KeyDerivation,
	resolver service.PublisherResolver,
	cache ContentCache,
	logger *slog.Logger,
) DecryptionUseCase {
	return &decryptionUseCase{
		cipher:   cipher,
		kdf:      kdf,
		resolver: resolver,
		cache:    cache,
		logger:   logger,
	}
}

// DecryptArticle opens the payload for the reader.
func (d *decryptionUseCase) DecryptArticle(
	ctx context.Context,
	input contentDomain.DecryptInput,
) (*contentDomain.DecryptResult, error) {
	if input.ArticleID == 0 {
		return nil, cryptoDomain.ErrMissingArticleID
	}
	if err := cryptoDomain.ValidateAddress(input.ReaderAddress); err != nil {
		return nil, err
	}

	cacheKey := d.kdf.CacheKey(input.ReaderAddress, input.ArticleID)
	if entry, ok := d.cache.Get(cacheKey); ok {
		return &contentDomain.DecryptResult{Plaintext: entry.Plaintext, Cached: true}, nil
	}

	if input.Grant == nil {
		return nil, contentDomain.ErrMissingLicense
	}
	if err := input.Grant.Validate(); err != nil {
		return nil, err
	}
	if input.Grant.ArticleID != input.ArticleID {
		return nil, contentDomain.ErrArticleIDMismatch
	}

	if !cryptoDomain.IsEncrypted(input.Payload) {
		return &contentDomain.DecryptResult{Plaintext: input.Payload}, nil
	}

	payload, err := cryptoDomain.ParsePayload(input.Payload)
	if err != nil {
		return nil, err
	}

	publisher, err := d.resolver.Resolve(ctx, input.ArticleID)
	if err != nil {
		return nil, err
	}

	tokenID, err := input.Grant.KeyTokenID()
	if err != nil {
		return nil, err
	}

	key, err := d.deriveKey(cryptoDomain.KeyMaterialParams{
		OwnerAddress:   publisher,
		ArticleID:      input.ArticleID,
		LicenseTokenID: tokenID,
	})
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	plaintext, err := d.cipher.Decrypt(payload.Ciphertext, key, payload.Nonce, payload.Tag)
	if err != nil {
		if d.logger != nil && apperrors.Is(err, apperrors.ErrIntegrity) {
			d.logger.Warn("article payload failed authentication",
				slog.Uint64("article_id", input.ArticleID),
				slog.String("publisher", publisher),
			)
		}
		return nil, err
	}

	text := string(plaintext)
	cryptoDomain.Zero(plaintext)

	d.cache.Set(cacheKey, contentDomain.CacheEntry{
		Plaintext:     text,
		ArticleID:     input.ArticleID,
		ReaderAddress: input.ReaderAddress,
	})

	return &contentDomain.DecryptResult{Plaintext: text}, nil
}

// ClearCache drops every cached article.
func (d *decryptionUseCase) ClearCache() {
	d.cache.Clear()
}

// EvictReader drops the reader's cached articles.
func (d *decryptionUseCase) EvictReader(readerAddress string) int {
	return d.cache.EvictReader(readerAddress)
}

// deriveKey collapses concurrent derivations of the same key into one PBKDF2 run. Each
// caller gets its own copy so it can zero it independently.
func (d *decryptionUseCase) deriveKey(params cryptoDomain.KeyMaterialParams) ([]byte, error) {
	if err := d.kdf.ValidateParams(params); err != nil {
		return nil, err
	}

	v, err, _ := d.derivings.Do(params.Material(), func() (any, error) {
		return d.kdf.DeriveKey(params)
	})
	if err != nil {
		return nil, err
	}

	shared := v.([]byte)
	key := make([]byte, len(shared))
	copy(key, shared)
	return key, nil
}
