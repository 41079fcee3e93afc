// Package http provides HTTP middleware for publisher authentication and reader rate limiting.
package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/paywall/internal/auth/service"
	apperrors "github.com/allisson/paywall/internal/errors"
	"github.com/allisson/paywall/internal/httputil"
)

// PublisherAuthMiddleware guards publisher endpoints with a bearer API key.
//
// The key in the Authorization header ("Bearer <key>", case-insensitive prefix) is
// verified against apiKeyHash with APIKeyService.CompareAPIKey. An empty apiKeyHash
// rejects every request, so publisher endpoints are closed until a hash is configured.
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Key does not match the configured hash → 401 Unauthorized
func PublisherAuthMiddleware(
	apiKeyService authService.APIKeyService,
	apiKeyHash string,
	logger *slog.Logger,
) gin.HandlerFunc {
	if apiKeyHash == "" {
		logger.Warn("publisher api key hash not configured - publisher endpoints will reject all requests")
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("publisher authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("publisher authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainKey := authHeader[len(bearerPrefix):]
		if plainKey == "" || apiKeyHash == "" || !apiKeyService.CompareAPIKey(plainKey, apiKeyHash) {
			logger.Debug("publisher authentication failed: invalid api key")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
