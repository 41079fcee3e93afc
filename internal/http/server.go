// Package http provides the HTTP server, router and shared middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/paywall/internal/auth/http"
	authService "github.com/allisson/paywall/internal/auth/service"
	"github.com/allisson/paywall/internal/config"
	contentHTTP "github.com/allisson/paywall/internal/content/http"
	"github.com/allisson/paywall/internal/database"
	licenseHTTP "github.com/allisson/paywall/internal/license/http"
	"github.com/allisson/paywall/internal/metrics"
)

const readinessTimeout = 2 * time.Second

// Server represents the HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. Call SetupRouter before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         net.JoinHostPort(host, strconv.Itoa(port)),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter registers middleware and routes.
//
// Reader routes are rate limited per IP when enabled. Publisher routes require the
// publisher API key. The rate limiter's cleanup goroutine stops when ctx is cancelled.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	contentHandler *contentHTTP.ContentHandler,
	licenseHandler *licenseHTTP.LicenseHandler,
	apiKeyService authService.APIKeyService,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	publisherAuth := authHTTP.PublisherAuthMiddleware(apiKeyService, cfg.PublisherAPIKeyHash, s.logger)

	v1 := router.Group("/v1")

	readers := v1.Group("")
	if cfg.RateLimitEnabled {
		readers.Use(authHTTP.ReaderRateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	{
		readers.POST("/content/estimate", contentHandler.EstimateHandler)
		readers.GET("/articles/:id/content", contentHandler.ReadHandler)
		readers.GET("/articles/:id/access", licenseHandler.AccessHandler)
		readers.GET("/articles/:id/licenses", licenseHandler.MarketHandler)
		readers.POST("/articles/:id/licenses/buy", licenseHandler.BuyHandler)
		readers.POST("/articles/:id/licenses/burn", licenseHandler.BurnHandler)
		readers.POST("/articles/:id/licenses/purchase", licenseHandler.PurchaseHandler)
		readers.GET("/articles/:id/regeneration", licenseHandler.RegenerationStatusHandler)
		readers.DELETE("/readers/:address/cache", contentHandler.EvictReaderHandler)
	}

	publishers := v1.Group("")
	publishers.Use(publisherAuth)
	{
		publishers.POST("/content/encrypt", contentHandler.EncryptHandler)
		publishers.GET("/articles/next-id", contentHandler.NextArticleIDHandler)
		publishers.PUT("/articles/:id/content", contentHandler.PublishHandler)
		publishers.DELETE("/articles/:id/content", contentHandler.DeleteHandler)
		publishers.POST("/articles/:id/regeneration", licenseHandler.RegenerateHandler)
		publishers.DELETE("/cache", contentHandler.ClearCacheHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports that the process is up.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the content store is reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if err := database.Ping(c.Request.Context(), s.db, readinessTimeout); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
