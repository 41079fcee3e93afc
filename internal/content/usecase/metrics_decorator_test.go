package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	contentDomain "github.com/allisson/paywall/internal/content/domain"
	"github.com/allisson/paywall/internal/content/usecase"
	usecaseMocks "github.com/allisson/paywall/internal/content/usecase/mocks"
	cryptoDomain "github.com/allisson/paywall/internal/crypto/domain"
	"github.com/allisson/paywall/internal/metrics"
)

type mockBusinessMetrics struct {
	mock.Mock
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectMetrics(ctx context.Context, m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", ctx, "content", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "content", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestEncryptionUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	params := contentDomain.EncryptParams{PublisherAddress: "0x5b38da6a701c568545dcfcb03fcb875f56beddc4", ArticleID: 15}

	t.Run("Success_EncryptArticle", func(t *testing.T) {
		mockNext := &usecaseMocks.MockEncryptionUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewEncryptionUseCaseWithMetrics(mockNext, mockMetrics)

		expected := &contentDomain.EncryptResult{Payload: "ENCRYPTED_V1:a:b:c"}
		mockNext.On("EncryptArticle", ctx, "text", params).Return(expected, nil).Once()
		expectMetrics(ctx, mockMetrics, "article_encrypt", "success")

		result, err := uc.EncryptArticle(ctx, "text", params)

		assert.NoError(t, err)
		assert.Equal(t, expected, result)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_EncryptArticle", func(t *testing.T) {
		mockNext := &usecaseMocks.MockEncryptionUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewEncryptionUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("EncryptArticle", ctx, "", params).Return(nil, contentDomain.ErrEmptyPlaintext).Once()
		expectMetrics(ctx, mockMetrics, "article_encrypt", "error")

		_, err := uc.EncryptArticle(ctx, "", params)

		assert.ErrorIs(t, err, contentDomain.ErrEmptyPlaintext)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Success_PredictRecordsSource", func(t *testing.T) {
		mockNext := &usecaseMocks.MockEncryptionUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewEncryptionUseCaseWithMetrics(mockNext, mockMetrics)

		prediction := &contentDomain.ArticleIDPrediction{
			ArticleID:   1760000000,
			Provisional: true,
			Source:      contentDomain.PredictionSourceTimestamp,
		}
		mockNext.On("PredictNextArticleID", ctx).Return(prediction, nil).Once()
		expectMetrics(ctx, mockMetrics, "article_id_predict", contentDomain.PredictionSourceTimestamp)

		result, err := uc.PredictNextArticleID(ctx)

		assert.NoError(t, err)
		assert.Equal(t, prediction, result)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Success_EstimateNotRecorded", func(t *testing.T) {
		mockNext := &usecaseMocks.MockEncryptionUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewEncryptionUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("EstimateEncryptedSize", 10).Return(85).Once()

		assert.Equal(t, 85, uc.EstimateEncryptedSize(10))
		mockMetrics.AssertNotCalled(t, "RecordOperation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDecryptionUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	input := contentDomain.DecryptInput{Payload: "ENCRYPTED_V1:a:b:c", ArticleID: 15}

	tests := []struct {
		name   string
		result *contentDomain.DecryptResult
		err    error
		status string
	}{
		{name: "Success_Decrypted", result: &contentDomain.DecryptResult{Plaintext: "text"}, status: "success"},
		{
			name:   "Success_CacheHit",
			result: &contentDomain.DecryptResult{Plaintext: "text", Cached: true},
			status: "cached",
		},
		{name: "Error_Unclassified", err: assert.AnError, status: "internal_error"},
		{
			name:   "Error_Integrity",
			err:    cryptoDomain.ErrIntegrityCheckFailed,
			status: "integrity_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockNext := &usecaseMocks.MockDecryptionUseCase{}
			mockMetrics := &mockBusinessMetrics{}
			uc := usecase.NewDecryptionUseCaseWithMetrics(mockNext, mockMetrics)

			if tt.result != nil {
				mockNext.On("DecryptArticle", ctx, input).Return(tt.result, nil).Once()
			} else {
				mockNext.On("DecryptArticle", ctx, input).Return(nil, tt.err).Once()
			}
			expectMetrics(ctx, mockMetrics, "article_decrypt", tt.status)

			_, err := uc.DecryptArticle(ctx, input)

			assert.ErrorIs(t, err, tt.err)
			mockMetrics.AssertExpectations(t)
		})
	}

	t.Run("Success_CacheOperations", func(t *testing.T) {
		mockNext := &usecaseMocks.MockDecryptionUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewDecryptionUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("ClearCache").Return().Once()
		mockNext.On("EvictReader", "0xabc").Return(2).Once()
		mockMetrics.On("RecordOperation", mock.Anything, "content", "cache_clear", "success").Return().Once()
		mockMetrics.On("RecordOperation", mock.Anything, "content", "cache_evict_reader", "success").Return().Once()

		uc.ClearCache()
		assert.Equal(t, 2, uc.EvictReader("0xabc"))

		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}

func TestArticleContentUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Read", func(t *testing.T) {
		mockNext := &usecaseMocks.MockArticleContentUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewArticleContentUseCaseWithMetrics(mockNext, mockMetrics)

		expected := &contentDomain.ReadResult{Content: &contentDomain.DecryptResult{Plaintext: "text"}}
		mockNext.On("Read", ctx, uint64(15), "0xabc").Return(expected, nil).Once()
		expectMetrics(ctx, mockMetrics, "article_read", "success")

		result, err := uc.Read(ctx, 15, "0xabc")

		assert.NoError(t, err)
		assert.Equal(t, expected, result)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_Delete", func(t *testing.T) {
		mockNext := &usecaseMocks.MockArticleContentUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewArticleContentUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Delete", ctx, uint64(16)).Return(contentDomain.ErrContentNotFound).Once()
		expectMetrics(ctx, mockMetrics, "article_delete", "error")

		err := uc.Delete(ctx, 16)

		assert.ErrorIs(t, err, contentDomain.ErrContentNotFound)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Success_Publish", func(t *testing.T) {
		mockNext := &usecaseMocks.MockArticleContentUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewArticleContentUseCaseWithMetrics(mockNext, mockMetrics)

		params := contentDomain.EncryptParams{ArticleID: 15}
		expected := &contentDomain.EncryptResult{Payload: "ENCRYPTED_V1:a:b:c"}
		mockNext.On("Publish", ctx, "text", params).Return(expected, nil).Once()
		expectMetrics(ctx, mockMetrics, "article_publish", "success")

		_, err := uc.Publish(ctx, "text", params)

		assert.NoError(t, err)
		mockMetrics.AssertExpectations(t)
	})
}
