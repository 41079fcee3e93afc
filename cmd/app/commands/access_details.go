package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	licenseDomain "github.com/allisson/paywall/internal/license/domain"
	"github.com/allisson/paywall/internal/license/http/dto"
	licenseUseCase "github.com/allisson/paywall/internal/license/usecase"
)

// RunAccessDetails prints how a reader may access an article: as collectible owner, through
// an active burned license, through a license waiting to be burned, or not at all.
func RunAccessDetails(
	ctx context.Context,
	accessUseCase licenseUseCase.AccessUseCase,
	logger *slog.Logger,
	writer io.Writer,
	articleID uint64,
	reader string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	record, err := accessUseCase.GetAccessDetails(ctx, articleID, reader)
	if err != nil {
		return fmt.Errorf("failed to get access details: %w", err)
	}

	logger.Info("access details resolved",
		slog.Uint64("article_id", articleID),
		slog.Bool("has_access", record.HasAccess),
	)

	if format == "json" {
		return writeJSON(writer, dto.MapAccessToResponse(record))
	}

	return writeAccessText(writer, record)
}

func writeAccessText(writer io.Writer, record *licenseDomain.AccessRecord) error {
	_, _ = fmt.Fprintf(writer, "Article:          %d\n", record.ArticleID)
	_, _ = fmt.Fprintf(writer, "Reader:           %s\n", record.ReaderAddress)
	_, _ = fmt.Fprintf(writer, "Has access:       %t\n", record.HasAccess)
	_, _ = fmt.Fprintf(writer, "Access type:      %s\n", record.AccessType)
	if tokenID := record.TokenID(); tokenID != "" {
		_, _ = fmt.Fprintf(writer, "Token:            %s\n", tokenID)
	}
	if record.ExpiryTime != nil {
		_, _ = fmt.Fprintf(writer, "Expires:          %s\n", record.ExpiryTime.UTC().Format(time.RFC3339))
	}
	_, _ = fmt.Fprintf(writer, "Needs activation: %t\n", record.NeedsActivation)
	_, err := fmt.Fprintf(writer, "Purchase state:   %s\n", record.PurchaseState())
	return err
}
