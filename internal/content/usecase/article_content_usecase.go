package usecase

import (
	"context"
	"log/slog"
	"time"

	contentDomain "github.com/allisson/paywall/internal/content/domain"
	"github.com/allisson/paywall/internal/content/service"
	cryptoDomain "github.com/allisson/paywall/internal/crypto/domain"
	"github.com/allisson/paywall/internal/database"
	apperrors "github.com/allisson/paywall/internal/errors"
	licenseDomain "github.com/allisson/paywall/internal/license/domain"
)

type articleContentUseCase struct {
	txManager  database.TxManager
	repository ArticleContentRepository
	encryption EncryptionUseCase
	decryption DecryptionUseCase
	access     AccessResolver
	publishers service.PublisherResolver
	logger     *slog.Logger
}

// NewArticleContentUseCase creates an ArticleContentUseCase. publishers answers from the
// ledger only; Publish checks the requested publisher against it.
func NewArticleContentUseCase(
	txManager database.TxManager,
	repository ArticleContentRepository,
	encryption EncryptionUseCase,
	decryption DecryptionUseCase,
	access AccessResolver,
	publishers service.PublisherResolver,
	logger *slog.Logger,
) ArticleContentUseCase {
	return &articleContentUseCase{
		txManager:  txManager,
		repository: repository,
		encryption: encryption,
		decryption: decryption,
		access:     access,
		publishers: publishers,
		logger:     logger,
	}
}

// Publish seals the article and stores the payload, replacing any earlier version. An
// article already on the ledger must be published under its ledger author.
func (a *articleContentUseCase) Publish(
	ctx context.Context,
	plaintext string,
	params contentDomain.EncryptParams,
) (*contentDomain.EncryptResult, error) {
	if err := a.checkPublisher(ctx, params); err != nil {
		return nil, err
	}

	result, err := a.encryption.EncryptArticle(ctx, plaintext, params)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	content := &contentDomain.ArticleContent{
		ArticleID:        result.Metadata.ArticleID,
		PublisherAddress: result.Metadata.PublisherAddress,
		Payload:          result.Payload,
		PayloadVersion:   result.Metadata.PayloadVersion,
		PlaintextSize:    result.Metadata.PlaintextSize,
		PayloadSize:      result.Metadata.PayloadSize,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		existing, err := a.repository.Get(ctx, content.ArticleID)
		switch {
		case err == nil:
			content.CreatedAt = existing.CreatedAt
		case !apperrors.Is(err, contentDomain.ErrContentNotFound):
			return err
		}
		return a.repository.Upsert(ctx, content)
	})
	if err != nil {
		return nil, err
	}

	// Readers holding the old text must not keep it past a republish.
	a.decryption.ClearCache()

	if a.logger != nil {
		a.logger.Info("article content published",
			slog.Uint64("article_id", content.ArticleID),
			slog.String("publisher", content.PublisherAddress),
			slog.Int("payload_size", content.PayloadSize),
		)
	}
	return result, nil
}

// checkPublisher compares the requested publisher with the ledger author. An article the
// ledger does not know yet is published under the requested address, which the content
// store then reports on the read path.
func (a *articleContentUseCase) checkPublisher(ctx context.Context, params contentDomain.EncryptParams) error {
	if params.ArticleID == 0 {
		return cryptoDomain.ErrMissingArticleID
	}
	if err := cryptoDomain.ValidateAddress(params.PublisherAddress); err != nil {
		return err
	}

	author, err := a.publishers.Resolve(ctx, params.ArticleID)
	switch {
	case apperrors.Is(err, contentDomain.ErrPublisherNotFound):
		if a.logger != nil {
			a.logger.Debug("article not on ledger, publishing under requested address",
				slog.Uint64("article_id", params.ArticleID),
				slog.String("publisher", cryptoDomain.NormalizeAddress(params.PublisherAddress)),
			)
		}
		return nil
	case err != nil:
		return err
	}

	if author != cryptoDomain.NormalizeAddress(params.PublisherAddress) {
		return apperrors.Wrapf(
			contentDomain.ErrPublisherMismatch,
			"article %d is authored by %s",
			params.ArticleID,
			author,
		)
	}
	return nil
}

// Read returns the article text when the reader is entitled to it.
func (a *articleContentUseCase) Read(
	ctx context.Context,
	articleID uint64,
	reader string,
) (*contentDomain.ReadResult, error) {
	access, err := a.access.GetAccessDetails(ctx, articleID, reader)
	if err != nil {
		return nil, err
	}

	if !access.HasAccess {
		if access.NeedsActivation {
			return &contentDomain.ReadResult{Access: access}, licenseDomain.ErrActivationRequired
		}
		return &contentDomain.ReadResult{Access: access}, licenseDomain.ErrAccessDenied
	}

	stored, err := a.repository.Get(ctx, articleID)
	if err != nil {
		return nil, err
	}

	content, err := a.decryption.DecryptArticle(ctx, contentDomain.DecryptInput{
		Payload:       stored.Payload,
		ReaderAddress: cryptoDomain.NormalizeAddress(reader),
		ArticleID:     articleID,
		Grant:         access.Grant,
	})
	if err != nil {
		return nil, err
	}

	return &contentDomain.ReadResult{Access: access, Content: content}, nil
}

// Delete removes the stored payload and cached copies.
func (a *articleContentUseCase) Delete(ctx context.Context, articleID uint64) error {
	if articleID == 0 {
		return cryptoDomain.ErrMissingArticleID
	}
	if err := a.repository.Delete(ctx, articleID); err != nil {
		return err
	}
	a.decryption.ClearCache()
	return nil
}
