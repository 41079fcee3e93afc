package usecase

import (
	"context"
	"time"

	contentDomain "github.com/allisson/paywall/internal/content/domain"
	apperrors "github.com/allisson/paywall/internal/errors"
	"github.com/allisson/paywall/internal/metrics"
)

// encryptionUseCaseWithMetrics decorates EncryptionUseCase with metrics instrumentation.
type encryptionUseCaseWithMetrics struct {
	next    EncryptionUseCase
	metrics metrics.BusinessMetrics
}

// NewEncryptionUseCaseWithMetrics wraps an EncryptionUseCase with metrics recording.
func NewEncryptionUseCaseWithMetrics(useCase EncryptionUseCase, m metrics.BusinessMetrics) EncryptionUseCase {
	return &encryptionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// EncryptArticle records metrics for article encryption.
func (e *encryptionUseCaseWithMetrics) EncryptArticle(
	ctx context.Context,
	plaintext string,
	params contentDomain.EncryptParams,
) (*contentDomain.EncryptResult, error) {
	start := time.Now()
	result, err := e.next.EncryptArticle(ctx, plaintext, params)

	status := "success"
	if err != nil {
		status = "error"
	}

	metrics.Record(ctx, e.metrics, metrics.DomainContent, "article_encrypt", status, start)

	return result, err
}

// EstimateEncryptedSize is a pure computation and is not recorded.
func (e *encryptionUseCaseWithMetrics) EstimateEncryptedSize(plaintextLen int) int {
	return e.next.EstimateEncryptedSize(plaintextLen)
}

// PredictNextArticleID records the prediction source as status.
func (e *encryptionUseCaseWithMetrics) PredictNextArticleID(
	ctx context.Context,
) (*contentDomain.ArticleIDPrediction, error) {
	start := time.Now()
	prediction, err := e.next.PredictNextArticleID(ctx)

	status := "error"
	if err == nil {
		status = prediction.Source
	}

	metrics.Record(ctx, e.metrics, metrics.DomainContent, "article_id_predict", status, start)

	return prediction, err
}

// decryptionUseCaseWithMetrics decorates DecryptionUseCase with metrics instrumentation.
type decryptionUseCaseWithMetrics struct {
	next    DecryptionUseCase
	metrics metrics.BusinessMetrics
}

// NewDecryptionUseCaseWithMetrics wraps a DecryptionUseCase with metrics recording.
func NewDecryptionUseCaseWithMetrics(useCase DecryptionUseCase, m metrics.BusinessMetrics) DecryptionUseCase {
	return &decryptionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// DecryptArticle records "cached" for cache hits so the hit ratio can be derived, and the
// error code for failures so integrity errors stand apart from ledger outages.
func (d *decryptionUseCaseWithMetrics) DecryptArticle(
	ctx context.Context,
	input contentDomain.DecryptInput,
) (*contentDomain.DecryptResult, error) {
	start := time.Now()
	result, err := d.next.DecryptArticle(ctx, input)

	status := "success"
	switch {
	case err != nil:
		status = apperrors.Code(err)
	case result.Cached:
		status = "cached"
	}

	metrics.Record(ctx, d.metrics, metrics.DomainContent, "article_decrypt", status, start)

	return result, err
}

func (d *decryptionUseCaseWithMetrics) ClearCache() {
	d.next.ClearCache()
	d.metrics.RecordOperation(context.Background(), metrics.DomainContent, "cache_clear", "success")
}

func (d *decryptionUseCaseWithMetrics) EvictReader(readerAddress string) int {
	removed := d.next.EvictReader(readerAddress)
	d.metrics.RecordOperation(context.Background(), metrics.DomainContent, "cache_evict_reader", "success")
	return removed
}

// articleContentUseCaseWithMetrics decorates ArticleContentUseCase with metrics instrumentation.
type articleContentUseCaseWithMetrics struct {
	next    ArticleContentUseCase
	metrics metrics.BusinessMetrics
}

// NewArticleContentUseCaseWithMetrics wraps an ArticleContentUseCase with metrics recording.
func NewArticleContentUseCaseWithMetrics(
	useCase ArticleContentUseCase,
	m metrics.BusinessMetrics,
) ArticleContentUseCase {
	return &articleContentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *articleContentUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	metrics.Record(ctx, a.metrics, metrics.DomainContent, operation, status, start)
}

func (a *articleContentUseCaseWithMetrics) Publish(
	ctx context.Context,
	plaintext string,
	params contentDomain.EncryptParams,
) (*contentDomain.EncryptResult, error) {
	start := time.Now()
	result, err := a.next.Publish(ctx, plaintext, params)
	a.record(ctx, "article_publish", start, err)
	return result, err
}

func (a *articleContentUseCaseWithMetrics) Read(
	ctx context.Context,
	articleID uint64,
	reader string,
) (*contentDomain.ReadResult, error) {
	start := time.Now()
	result, err := a.next.Read(ctx, articleID, reader)
	a.record(ctx, "article_read", start, err)
	return result, err
}

func (a *articleContentUseCaseWithMetrics) Delete(ctx context.Context, articleID uint64) error {
	start := time.Now()
	err := a.next.Delete(ctx, articleID)
	a.record(ctx, "article_delete", start, err)
	return err
}
