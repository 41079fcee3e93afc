// Package usecase implements the publish and read paths for encrypted articles.
//
// The publish path derives a per-article key from the publisher address, the article id
// and the unbound license token id, then seals the text into the ENCRYPTED_V1 wire form.
// The read path checks the ledger for an entitlement, resolves the publisher address,
// re-derives the same key and opens the payload. Decrypted text is cached per reader.
package usecase

import (
	"context"
	"log/slog"
	"time"

	contentDomain "github.com/allisson/paywall/internal/content/domain"
	cryptoDomain "github.com/allisson/paywall/internal/crypto/domain"
	cryptoService "github.com/allisson/paywall/internal/crypto/service"
	"github.com/allisson/paywall/internal/ledger"
)

type encryptionUseCase struct {
	cipher   cryptoService.SymmetricCipher
	kdf      cryptoService.KeyDerivation
	articles ledger.ArticleReader
	now      func() time.Time
	logger   *slog.Logger
}

// NewEncryptionUseCase creates an EncryptionUseCase.
func NewEncryptionUseCase(
	cipher cryptoService.SymmetricCipher,
	kdf cryptoService.KeyDerivation,
	articles ledger.ArticleReader,
	logger *slog.Logger,
) EncryptionUseCase {
	return &encryptionUseCase{
		cipher:   cipher,
		kdf:      kdf,
		articles: articles,
		now:      time.Now,
		logger:   logger,
	}
}

// EncryptArticle seals plaintext under the key derived from params.
func (e *encryptionUseCase) EncryptArticle(
	_ context.Context,
	plaintext string,
	params contentDomain.EncryptParams,
) (*contentDomain.EncryptResult, error) {
	if plaintext == "" {
		return nil, contentDomain.ErrEmptyPlaintext
	}

	tokenID := params.LicenseTokenID
	if tokenID == "" {
		tokenID = cryptoDomain.UnboundTokenID
	}
	keyParams := cryptoDomain.KeyMaterialParams{
		OwnerAddress:   params.PublisherAddress,
		ArticleID:      params.ArticleID,
		LicenseTokenID: tokenID,
	}

	key, err := e.kdf.DeriveKey(keyParams)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	sealed, err := e.cipher.Encrypt([]byte(plaintext), key, nil)
	if err != nil {
		return nil, err
	}

	payload := cryptoDomain.EncryptedPayload{
		Version:    cryptoDomain.PayloadVersion,
		Nonce:      sealed.Nonce,
		Ciphertext: sealed.Ciphertext,
		Tag:        sealed.Tag,
	}
	wire := payload.String()

	return &contentDomain.EncryptResult{
		Payload: wire,
		Metadata: contentDomain.EncryptMetadata{
			ArticleID:        params.ArticleID,
			PublisherAddress: cryptoDomain.NormalizeAddress(params.PublisherAddress),
			PayloadVersion:   cryptoDomain.PayloadVersion,
			Algorithm:        cryptoDomain.PayloadAlgorithm,
			PlaintextSize:    len(plaintext),
			PayloadSize:      len(wire),
			EncryptedAt:      e.now().UTC(),
		},
	}, nil
}

// EstimateEncryptedSize returns the exact wire length.
func (e *encryptionUseCase) EstimateEncryptedSize(plaintextLen int) int {
	if plaintextLen < 0 {
		plaintextLen = 0
	}
	return cryptoDomain.EncodedLen(plaintextLen)
}

// PredictNextArticleID returns the ledger article count plus one, or the current Unix
// time when the ledger cannot be read.
func (e *encryptionUseCase) PredictNextArticleID(ctx context.Context) (*contentDomain.ArticleIDPrediction, error) {
	count, err := e.articles.ArticleCount(ctx)
	if err == nil {
		return &contentDomain.ArticleIDPrediction{
			ArticleID:   count + 1,
			Provisional: true,
			Source:      contentDomain.PredictionSourceLedger,
		}, nil
	}

	if e.logger != nil {
		e.logger.Warn("article count unavailable, using timestamp placeholder", slog.Any("error", err))
	}
	return &contentDomain.ArticleIDPrediction{
		ArticleID:   uint64(e.now().Unix()),
		Provisional: true,
		Source:      contentDomain.PredictionSourceTimestamp,
	}, nil
}
