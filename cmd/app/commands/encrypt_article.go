package commands

import (
	"context"
	"fmt"
	"log/slog"

	contentDomain "github.com/allisson/paywall/internal/content/domain"
	"github.com/allisson/paywall/internal/content/http/dto"
	contentUseCase "github.com/allisson/paywall/internal/content/usecase"
)

// RunEncryptArticle seals article text read from inputPath (or the IO reader) for the given
// publisher and article id and prints the payload. Nothing is stored.
//
// A zero articleID asks the ledger for a provisional next id first.
func RunEncryptArticle(
	ctx context.Context,
	encryptionUseCase contentUseCase.EncryptionUseCase,
	logger *slog.Logger,
	streams IOTuple,
	inputPath string,
	publisher string,
	articleID uint64,
	licenseTokenID string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	content, err := readContent(streams.Reader, inputPath)
	if err != nil {
		return err
	}

	if articleID == 0 {
		prediction, err := encryptionUseCase.PredictNextArticleID(ctx)
		if err != nil {
			return fmt.Errorf("failed to predict article id: %w", err)
		}
		articleID = prediction.ArticleID
		logger.Warn("using provisional article id",
			slog.Uint64("article_id", articleID),
			slog.String("source", prediction.Source),
		)
	}

	result, err := encryptionUseCase.EncryptArticle(ctx, content, contentDomain.EncryptParams{
		PublisherAddress: publisher,
		ArticleID:        articleID,
		LicenseTokenID:   licenseTokenID,
	})
	if err != nil {
		return fmt.Errorf("failed to encrypt article: %w", err)
	}

	logger.Info("article encrypted",
		slog.Uint64("article_id", result.Metadata.ArticleID),
		slog.Int("payload_size", result.Metadata.PayloadSize),
	)

	if format == "json" {
		return writeJSON(streams.Writer, dto.MapEncryptResultToResponse(result))
	}

	_, err = fmt.Fprintln(streams.Writer, result.Payload)
	return err
}
