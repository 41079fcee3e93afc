// Package mocks provides mock ledger implementations for testing.
package mocks

import (
	"context"
	"math/big"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/paywall/internal/ledger"
	licenseDomain "github.com/allisson/paywall/internal/license/domain"
)

// MockArticleReader is a mock implementation of ledger.ArticleReader.
type MockArticleReader struct {
	mock.Mock
}

// GetArticle mocks the GetArticle method.
func (m *MockArticleReader) GetArticle(ctx context.Context, articleID uint64) (*ledger.Article, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Article), args.Error(1)
}

// GetArticleRecord mocks the GetArticleRecord method.
func (m *MockArticleReader) GetArticleRecord(ctx context.Context, articleID uint64) (*ledger.Article, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Article), args.Error(1)
}

// ArticleCount mocks the ArticleCount method.
func (m *MockArticleReader) ArticleCount(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

// MockLicenseLedger is a mock implementation of ledger.LicenseLedger.
type MockLicenseLedger struct {
	mock.Mock
}

// NFTBalance mocks the NFTBalance method.
func (m *MockLicenseLedger) NFTBalance(ctx context.Context, articleID uint64, owner string) (uint64, error) {
	args := m.Called(ctx, articleID, owner)
	return args.Get(0).(uint64), args.Error(1)
}

// ActiveAccess mocks the ActiveAccess method.
func (m *MockLicenseLedger) ActiveAccess(
	ctx context.Context,
	articleID uint64,
	reader string,
) (*licenseDomain.AccessWindow, error) {
	args := m.Called(ctx, articleID, reader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licenseDomain.AccessWindow), args.Error(1)
}

// UnburnedLicenses mocks the UnburnedLicenses method.
func (m *MockLicenseLedger) UnburnedLicenses(
	ctx context.Context,
	articleID uint64,
	reader string,
) (*licenseDomain.LicenseHolding, error) {
	args := m.Called(ctx, articleID, reader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licenseDomain.LicenseHolding), args.Error(1)
}

// CurrentPrice mocks the CurrentPrice method.
func (m *MockLicenseLedger) CurrentPrice(ctx context.Context, articleID uint64) (*big.Int, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

// LicenseHolders mocks the LicenseHolders method.
func (m *MockLicenseLedger) LicenseHolders(ctx context.Context, articleID uint64) ([]string, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// LicenseState mocks the LicenseState method.
func (m *MockLicenseLedger) LicenseState(
	ctx context.Context,
	articleID uint64,
) (*licenseDomain.LicenseState, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licenseDomain.LicenseState), args.Error(1)
}

// Buy mocks the Buy method.
func (m *MockLicenseLedger) Buy(
	ctx context.Context,
	articleID uint64,
	buyer, seller string,
	value *big.Int,
) (*licenseDomain.Transaction, error) {
	args := m.Called(ctx, articleID, buyer, seller, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licenseDomain.Transaction), args.Error(1)
}

// BurnForAccess mocks the BurnForAccess method.
func (m *MockLicenseLedger) BurnForAccess(
	ctx context.Context,
	articleID uint64,
	reader string,
) (*licenseDomain.Transaction, error) {
	args := m.Called(ctx, articleID, reader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licenseDomain.Transaction), args.Error(1)
}

// ShouldRegenerate mocks the ShouldRegenerate method.
func (m *MockLicenseLedger) ShouldRegenerate(ctx context.Context, articleID uint64) (bool, error) {
	args := m.Called(ctx, articleID)
	return args.Bool(0), args.Error(1)
}

// Regenerate mocks the Regenerate method.
func (m *MockLicenseLedger) Regenerate(ctx context.Context, articleID uint64) (*licenseDomain.Transaction, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licenseDomain.Transaction), args.Error(1)
}
