// Package http provides HTTP handlers for publishing encrypted articles and serving them
// to entitled readers.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	contentDomain "github.com/allisson/paywall/internal/content/domain"
	"github.com/allisson/paywall/internal/content/http/dto"
	contentUseCase "github.com/allisson/paywall/internal/content/usecase"
	cryptoDomain "github.com/allisson/paywall/internal/crypto/domain"
	apperrors "github.com/allisson/paywall/internal/errors"
	"github.com/allisson/paywall/internal/httputil"
	licenseDomain "github.com/allisson/paywall/internal/license/domain"
	licenseDTO "github.com/allisson/paywall/internal/license/http/dto"
	customValidation "github.com/allisson/paywall/internal/validation"
)

// ContentHandler handles HTTP requests for article encryption, storage and reading.
type ContentHandler struct {
	encryptionUseCase contentUseCase.EncryptionUseCase
	decryptionUseCase contentUseCase.DecryptionUseCase
	articleUseCase    contentUseCase.ArticleContentUseCase
	logger            *slog.Logger
}

// NewContentHandler creates a new content handler.
func NewContentHandler(
	encryptionUseCase contentUseCase.EncryptionUseCase,
	decryptionUseCase contentUseCase.DecryptionUseCase,
	articleUseCase contentUseCase.ArticleContentUseCase,
	logger *slog.Logger,
) *ContentHandler {
	return &ContentHandler{
		encryptionUseCase: encryptionUseCase,
		decryptionUseCase: decryptionUseCase,
		articleUseCase:    articleUseCase,
		logger:            logger,
	}
}

// EncryptHandler seals article text and returns the payload without storing it.
// POST /v1/content/encrypt - Requires publisher API key.
func (h *ContentHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.encryptionUseCase.EncryptArticle(c.Request.Context(), req.Content, req.ToParams())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEncryptResultToResponse(result))
}

// EstimateHandler returns the encrypted size for a plaintext.
// POST /v1/content/estimate
func (h *ContentHandler) EstimateHandler(c *gin.Context) {
	var req dto.EstimateSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	size := req.Size()
	c.JSON(http.StatusOK, dto.EstimateSizeResponse{
		PlaintextSize: size,
		EncryptedSize: h.encryptionUseCase.EstimateEncryptedSize(size),
	})
}

// NextArticleIDHandler predicts the id the ledger will assign to the next article.
// GET /v1/articles/next-id - Requires publisher API key.
func (h *ContentHandler) NextArticleIDHandler(c *gin.Context) {
	prediction, err := h.encryptionUseCase.PredictNextArticleID(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPredictionToResponse(prediction))
}

// PublishHandler seals and stores an article, replacing any earlier version.
// PUT /v1/articles/:id/content - Requires publisher API key.
func (h *ContentHandler) PublishHandler(c *gin.Context) {
	articleID, err := httputil.ParseArticleID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.PublishArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.articleUseCase.Publish(c.Request.Context(), req.Content, contentDomain.EncryptParams{
		PublisherAddress: req.PublisherAddress,
		ArticleID:        articleID,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PublishResponse{Metadata: dto.MapEncryptResultToResponse(result).Metadata})
}

// ReadHandler checks the reader's access and returns the decrypted article.
// GET /v1/articles/:id/content?reader=0x...
//
// A reader without access gets 403 with the access record, so a client can tell
// "buy a license" apart from "activate the license you hold".
func (h *ContentHandler) ReadHandler(c *gin.Context) {
	articleID, err := httputil.ParseArticleID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	reader, err := httputil.RequireQuery(c, "reader")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	result, err := h.articleUseCase.Read(c.Request.Context(), articleID, reader)
	if err != nil {
		if result != nil && result.Access != nil {
			h.accessDenied(c, err, result.Access)
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapReadResultToResponse(articleID, result))
}

func (h *ContentHandler) accessDenied(c *gin.Context, err error, access *licenseDomain.AccessRecord) {
	code := "access_denied"
	if apperrors.Is(err, licenseDomain.ErrActivationRequired) {
		code = "activation_required"
	}

	h.logger.Info("article read denied",
		slog.Uint64("article_id", access.ArticleID),
		slog.String("reader", access.ReaderAddress),
		slog.String("reason", code),
	)

	c.JSON(http.StatusForbidden, dto.AccessDeniedResponse{
		Error:   code,
		Message: err.Error(),
		Access:  licenseDTO.MapAccessToResponse(access),
	})
}

// DeleteHandler removes a stored article.
// DELETE /v1/articles/:id/content - Requires publisher API key.
func (h *ContentHandler) DeleteHandler(c *gin.Context) {
	articleID, err := httputil.ParseArticleID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.articleUseCase.Delete(c.Request.Context(), articleID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// EvictReaderHandler drops a reader's cached articles, as when a wallet disconnects.
// DELETE /v1/readers/:address/cache
func (h *ContentHandler) EvictReaderHandler(c *gin.Context) {
	address := c.Param("address")
	if err := cryptoDomain.ValidateAddress(address); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	evicted := h.decryptionUseCase.EvictReader(address)
	c.JSON(http.StatusOK, dto.EvictReaderResponse{
		ReaderAddress: cryptoDomain.NormalizeAddress(address),
		Evicted:       evicted,
	})
}

// ClearCacheHandler drops every cached article.
// DELETE /v1/cache - Requires publisher API key.
func (h *ContentHandler) ClearCacheHandler(c *gin.Context) {
	h.decryptionUseCase.ClearCache()
	c.Data(http.StatusNoContent, "application/json", nil)
}
