package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	licenseDomain "github.com/allisson/paywall/internal/license/domain"
	"github.com/allisson/paywall/internal/license/http/dto"
	licenseUseCase "github.com/allisson/paywall/internal/license/usecase"
)

// RunPurchaseLicense drives the reader through buy and burn until the article is readable.
// Running it again after a partial failure resumes from the state found on the ledger.
func RunPurchaseLicense(
	ctx context.Context,
	accessUseCase licenseUseCase.AccessUseCase,
	logger *slog.Logger,
	writer io.Writer,
	articleID uint64,
	reader string,
	seller string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("purchasing license",
		slog.Uint64("article_id", articleID),
		slog.String("reader", reader),
	)

	result, err := accessUseCase.Purchase(ctx, articleID, reader, seller)
	if err != nil {
		return fmt.Errorf("failed to purchase license: %w", err)
	}

	logger.Info("purchase completed",
		slog.Uint64("article_id", articleID),
		slog.String("state", string(result.State)),
		slog.Int("transactions", len(result.Transactions)),
	)

	if format == "json" {
		return writeJSON(writer, dto.MapPurchaseToResponse(result))
	}

	return writePurchaseText(writer, result)
}

func writePurchaseText(writer io.Writer, result *licenseDomain.PurchaseResult) error {
	_, _ = fmt.Fprintf(writer, "State: %s\n", result.State)
	if len(result.Transactions) == 0 {
		_, err := fmt.Fprintln(writer, "No transactions were needed")
		return err
	}
	for _, tx := range result.Transactions {
		_, _ = fmt.Fprintf(writer, "Transaction: %s (value %s wei)\n", tx.Hash, weiText(tx))
	}
	return nil
}

func weiText(tx *licenseDomain.Transaction) string {
	if tx.Value == nil {
		return "0"
	}
	return tx.Value.String()
}
