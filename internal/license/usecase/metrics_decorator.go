package usecase

import (
	"context"
	"math/big"
	"time"

	licenseDomain "github.com/allisson/paywall/internal/license/domain"
	"github.com/allisson/paywall/internal/metrics"
)

const metricsDomain = metrics.DomainLicense

// accessUseCaseWithMetrics decorates AccessUseCase with metrics instrumentation.
type accessUseCaseWithMetrics struct {
	next    AccessUseCase
	metrics metrics.BusinessMetrics
}

// NewAccessUseCaseWithMetrics wraps an AccessUseCase with metrics recording.
func NewAccessUseCaseWithMetrics(useCase AccessUseCase, m metrics.BusinessMetrics) AccessUseCase {
	return &accessUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *accessUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	metrics.Record(ctx, a.metrics, metricsDomain, operation, status, start)
}

// GetAccessDetails records the access type as the operation status so denials are visible.
func (a *accessUseCaseWithMetrics) GetAccessDetails(
	ctx context.Context,
	articleID uint64,
	reader string,
) (*licenseDomain.AccessRecord, error) {
	start := time.Now()
	record, err := a.next.GetAccessDetails(ctx, articleID, reader)

	status := "error"
	if err == nil {
		status = string(record.AccessType)
	}

	metrics.Record(ctx, a.metrics, metricsDomain, "access_check", status, start)

	return record, err
}

func (a *accessUseCaseWithMetrics) BuyLicense(
	ctx context.Context,
	articleID uint64,
	buyer, seller string,
) (*licenseDomain.Transaction, error) {
	start := time.Now()
	tx, err := a.next.BuyLicense(ctx, articleID, buyer, seller)
	a.record(ctx, "license_buy", start, err)
	return tx, err
}

func (a *accessUseCaseWithMetrics) BurnLicenseForAccess(
	ctx context.Context,
	articleID uint64,
	reader string,
) (*licenseDomain.Transaction, error) {
	start := time.Now()
	tx, err := a.next.BurnLicenseForAccess(ctx, articleID, reader)
	a.record(ctx, "license_burn", start, err)
	return tx, err
}

func (a *accessUseCaseWithMetrics) Purchase(
	ctx context.Context,
	articleID uint64,
	reader, seller string,
) (*licenseDomain.PurchaseResult, error) {
	start := time.Now()
	result, err := a.next.Purchase(ctx, articleID, reader, seller)
	a.record(ctx, "license_purchase", start, err)
	return result, err
}

func (a *accessUseCaseWithMetrics) GetLicenseState(
	ctx context.Context,
	articleID uint64,
) (*licenseDomain.LicenseState, error) {
	start := time.Now()
	state, err := a.next.GetLicenseState(ctx, articleID)
	a.record(ctx, "license_state", start, err)
	return state, err
}

func (a *accessUseCaseWithMetrics) CurrentPrice(ctx context.Context, articleID uint64) (*big.Int, error) {
	start := time.Now()
	price, err := a.next.CurrentPrice(ctx, articleID)
	a.record(ctx, "license_price", start, err)
	return price, err
}

func (a *accessUseCaseWithMetrics) GetLicenseMarket(
	ctx context.Context,
	articleID uint64,
) (*licenseDomain.LicenseMarket, error) {
	start := time.Now()
	market, err := a.next.GetLicenseMarket(ctx, articleID)
	a.record(ctx, "license_market", start, err)
	return market, err
}

func (a *accessUseCaseWithMetrics) ShouldRegenerate(ctx context.Context, articleID uint64) (bool, error) {
	start := time.Now()
	should, err := a.next.ShouldRegenerate(ctx, articleID)
	a.record(ctx, "regeneration_check", start, err)
	return should, err
}

func (a *accessUseCaseWithMetrics) Regenerate(
	ctx context.Context,
	articleID uint64,
) (*licenseDomain.Transaction, error) {
	start := time.Now()
	tx, err := a.next.Regenerate(ctx, articleID)
	a.record(ctx, "regenerate", start, err)
	return tx, err
}
