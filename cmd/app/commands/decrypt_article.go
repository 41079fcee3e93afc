package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	contentDomain "github.com/allisson/paywall/internal/content/domain"
	contentUseCase "github.com/allisson/paywall/internal/content/usecase"
	cryptoDomain "github.com/allisson/paywall/internal/crypto/domain"
	licenseDomain "github.com/allisson/paywall/internal/license/domain"
	licenseUseCase "github.com/allisson/paywall/internal/license/usecase"
)

// RunDecryptArticle opens a payload read from inputPath (or the IO reader) for a reader. The
// reader's access is checked on the ledger first; no grant means no decryption.
func RunDecryptArticle(
	ctx context.Context,
	accessUseCase licenseUseCase.AccessUseCase,
	decryptionUseCase contentUseCase.DecryptionUseCase,
	logger *slog.Logger,
	streams IOTuple,
	inputPath string,
	articleID uint64,
	reader string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	payload, err := readContent(streams.Reader, inputPath)
	if err != nil {
		return err
	}
	payload = strings.TrimSpace(payload)

	access, err := accessUseCase.GetAccessDetails(ctx, articleID, reader)
	if err != nil {
		return fmt.Errorf("failed to check access: %w", err)
	}
	if !access.HasAccess {
		if access.NeedsActivation {
			return fmt.Errorf("%w: burn the license with purchase-license first", licenseDomain.ErrActivationRequired)
		}
		return licenseDomain.ErrAccessDenied
	}

	result, err := decryptionUseCase.DecryptArticle(ctx, contentDomain.DecryptInput{
		Payload:       payload,
		ReaderAddress: cryptoDomain.NormalizeAddress(reader),
		ArticleID:     articleID,
		Grant:         access.Grant,
	})
	if err != nil {
		return fmt.Errorf("failed to decrypt article: %w", err)
	}

	logger.Info("article decrypted",
		slog.Uint64("article_id", articleID),
		slog.String("access_type", string(access.AccessType)),
	)

	if format == "json" {
		return writeJSON(streams.Writer, map[string]any{
			"article_id":  articleID,
			"content":     result.Plaintext,
			"access_type": access.AccessType,
		})
	}

	_, err = fmt.Fprint(streams.Writer, result.Plaintext)
	return err
}
