package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/paywall/internal/app"
	"github.com/allisson/paywall/internal/config"
	"github.com/allisson/paywall/internal/ledger"
)

const (
	shutdownTimeout  = 30 * time.Second
	ledgerProbeLimit = 5 * time.Second
)

// RunServer serves the paywall API, and the metrics endpoint when enabled, until SIGINT or
// SIGTERM arrives or either server fails. Both servers are then shut down together.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server",
		slog.String("version", version),
		slog.String("ledger_driver", cfg.LedgerDriver),
		slog.String("db_driver", cfg.DBDriver),
	)
	defer closeContainer(container, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := container.HTTPServer(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	if reader, err := container.ArticleReader(); err == nil {
		probeLedger(ctx, reader, logger)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Start(gctx); err != nil {
			return fmt.Errorf("api server error: %w", err)
		}
		return nil
	})

	if metricsServer != nil {
		g.Go(func() error {
			if err := metricsServer.Start(gctx); err != nil {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var shutdownErrors []error
		if err := server.Shutdown(shutdownCtx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("api server shutdown: %w", err))
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
			}
		}
		return errors.Join(shutdownErrors...)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}

// probeLedger logs whether the ledger answers. An unreachable ledger does not stop the
// server: access checks fail closed and publisher resolution falls back.
func probeLedger(ctx context.Context, reader ledger.ArticleReader, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, ledgerProbeLimit)
	defer cancel()

	count, err := reader.ArticleCount(ctx)
	if err != nil {
		logger.Warn("ledger not reachable at startup", slog.Any("error", err))
		return
	}
	logger.Info("ledger reachable", slog.Uint64("article_count", count))
}
