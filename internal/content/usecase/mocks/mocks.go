// Package mocks provides mock implementations of the content use cases and their
// dependencies for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	contentDomain "github.com/allisson/paywall/internal/content/domain"
)

// MockEncryptionUseCase is a mock implementation of usecase.EncryptionUseCase.
type MockEncryptionUseCase struct {
	mock.Mock
}

// EncryptArticle mocks the EncryptArticle method.
func (m *MockEncryptionUseCase) EncryptArticle(
	ctx context.Context,
	plaintext string,
	params contentDomain.EncryptParams,
) (*contentDomain.EncryptResult, error) {
	args := m.Called(ctx, plaintext, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contentDomain.EncryptResult), args.Error(1)
}

// EstimateEncryptedSize mocks the EstimateEncryptedSize method.
func (m *MockEncryptionUseCase) EstimateEncryptedSize(plaintextLen int) int {
	args := m.Called(plaintextLen)
	return args.Int(0)
}

// PredictNextArticleID mocks the PredictNextArticleID method.
func (m *MockEncryptionUseCase) PredictNextArticleID(
	ctx context.Context,
) (*contentDomain.ArticleIDPrediction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contentDomain.ArticleIDPrediction), args.Error(1)
}

// MockDecryptionUseCase is a mock implementation of usecase.DecryptionUseCase.
type MockDecryptionUseCase struct {
	mock.Mock
}

// DecryptArticle mocks the DecryptArticle method.
func (m *MockDecryptionUseCase) DecryptArticle(
	ctx context.Context,
	input contentDomain.DecryptInput,
) (*contentDomain.DecryptResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contentDomain.DecryptResult), args.Error(1)
}

// ClearCache mocks the ClearCache method.
func (m *MockDecryptionUseCase) ClearCache() {
	m.Called()
}

// EvictReader mocks the EvictReader method.
func (m *MockDecryptionUseCase) EvictReader(readerAddress string) int {
	args := m.Called(readerAddress)
	return args.Int(0)
}

// MockArticleContentUseCase is a mock implementation of usecase.ArticleContentUseCase.
type MockArticleContentUseCase struct {
	mock.Mock
}

// Publish mocks the Publish method.
func (m *MockArticleContentUseCase) Publish(
	ctx context.Context,
	plaintext string,
	params contentDomain.EncryptParams,
) (*contentDomain.EncryptResult, error) {
	args := m.Called(ctx, plaintext, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contentDomain.EncryptResult), args.Error(1)
}

// Read mocks the Read method.
func (m *MockArticleContentUseCase) Read(
	ctx context.Context,
	articleID uint64,
	reader string,
) (*contentDomain.ReadResult, error) {
	args := m.Called(ctx, articleID, reader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contentDomain.ReadResult), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockArticleContentUseCase) Delete(ctx context.Context, articleID uint64) error {
	args := m.Called(ctx, articleID)
	return args.Error(0)
}

// MockArticleContentRepository is a mock implementation of usecase.ArticleContentRepository.
type MockArticleContentRepository struct {
	mock.Mock
}

// Upsert mocks the Upsert method.
func (m *MockArticleContentRepository) Upsert(ctx context.Context, content *contentDomain.ArticleContent) error {
	args := m.Called(ctx, content)
	return args.Error(0)
}

// Get mocks the Get method.
func (m *MockArticleContentRepository) Get(
	ctx context.Context,
	articleID uint64,
) (*contentDomain.ArticleContent, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contentDomain.ArticleContent), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockArticleContentRepository) Delete(ctx context.Context, articleID uint64) error {
	args := m.Called(ctx, articleID)
	return args.Error(0)
}
