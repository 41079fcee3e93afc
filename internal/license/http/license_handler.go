// Package http provides HTTP handlers for reader access checks and license purchases.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/paywall/internal/httputil"
	"github.com/allisson/paywall/internal/license/http/dto"
	licenseUseCase "github.com/allisson/paywall/internal/license/usecase"
	customValidation "github.com/allisson/paywall/internal/validation"
)

// LicenseHandler handles HTTP requests for access checks and the license market.
type LicenseHandler struct {
	accessUseCase licenseUseCase.AccessUseCase
	logger        *slog.Logger
}

// NewLicenseHandler creates a new license handler.
func NewLicenseHandler(accessUseCase licenseUseCase.AccessUseCase, logger *slog.Logger) *LicenseHandler {
	return &LicenseHandler{
		accessUseCase: accessUseCase,
		logger:        logger,
	}
}

// AccessHandler classifies a reader's access to an article.
// GET /v1/articles/:id/access?reader=0x...
func (h *LicenseHandler) AccessHandler(c *gin.Context) {
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

	record, err := h.accessUseCase.GetAccessDetails(c.Request.Context(), articleID, reader)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccessToResponse(record))
}

// MarketHandler returns license supply, current price and holders.
// GET /v1/articles/:id/licenses
func (h *LicenseHandler) MarketHandler(c *gin.Context) {
	articleID, err := httputil.ParseArticleID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	market, err := h.accessUseCase.GetLicenseMarket(c.Request.Context(), articleID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMarketToResponse(market))
}

// BuyHandler buys a license for the reader.
// POST /v1/articles/:id/licenses/buy
func (h *LicenseHandler) BuyHandler(c *gin.Context) {
	articleID, err := httputil.ParseArticleID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.BuyLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	tx, err := h.accessUseCase.BuyLicense(c.Request.Context(), articleID, req.Reader, req.Seller)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTransactionToResponse(tx))
}

// BurnHandler burns one of the reader's licenses to open an access window.
// POST /v1/articles/:id/licenses/burn
func (h *LicenseHandler) BurnHandler(c *gin.Context) {
	articleID, err := httputil.ParseArticleID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.BurnLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	tx, err := h.accessUseCase.BurnLicenseForAccess(c.Request.Context(), articleID, req.Reader)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTransactionToResponse(tx))
}

// PurchaseHandler drives buy and burn until the reader can read the article.
// POST /v1/articles/:id/licenses/purchase
func (h *LicenseHandler) PurchaseHandler(c *gin.Context) {
	articleID, err := httputil.ParseArticleID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.accessUseCase.Purchase(c.Request.Context(), articleID, req.Reader, req.Seller)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPurchaseToResponse(result))
}

// RegenerationStatusHandler reports whether licenses are due for regeneration.
// GET /v1/articles/:id/regeneration
func (h *LicenseHandler) RegenerationStatusHandler(c *gin.Context) {
	articleID, err := httputil.ParseArticleID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	due, err := h.accessUseCase.ShouldRegenerate(c.Request.Context(), articleID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.RegenerationResponse{ArticleID: articleID, ShouldRegenerate: due})
}

// RegenerateHandler asks the ledger to mint a new license edition.
// POST /v1/articles/:id/regeneration - Requires publisher API key.
func (h *LicenseHandler) RegenerateHandler(c *gin.Context) {
	articleID, err := httputil.ParseArticleID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	tx, err := h.accessUseCase.Regenerate(c.Request.Context(), articleID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTransactionToResponse(tx))
}
