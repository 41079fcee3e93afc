// Package mocks provides mock implementations of the license use cases for testing.
package mocks

import (
	"context"
	"math/big"

	"github.com/stretchr/testify/mock"

	licenseDomain "github.com/allisson/paywall/internal/license/domain"
)

// MockAccessUseCase is a mock implementation of usecase.AccessUseCase.
type MockAccessUseCase struct {
	mock.Mock
}

// GetAccessDetails mocks the GetAccessDetails method.
func (m *MockAccessUseCase) GetAccessDetails(
	ctx context.Context,
	articleID uint64,
	reader string,
) (*licenseDomain.AccessRecord, error) {
	args := m.Called(ctx, articleID, reader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licenseDomain.AccessRecord), args.Error(1)
}

// BuyLicense mocks the BuyLicense method.
func (m *MockAccessUseCase) BuyLicense(
	ctx context.Context,
	articleID uint64,
	buyer, seller string,
) (*licenseDomain.Transaction, error) {
	args := m.Called(ctx, articleID, buyer, seller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licenseDomain.Transaction), args.Error(1)
}

// BurnLicenseForAccess mocks the BurnLicenseForAccess method.
func (m *MockAccessUseCase) BurnLicenseForAccess(
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

// Purchase mocks the Purchase method.
func (m *MockAccessUseCase) Purchase(
	ctx context.Context,
	articleID uint64,
	reader, seller string,
) (*licenseDomain.PurchaseResult, error) {
	args := m.Called(ctx, articleID, reader, seller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licenseDomain.PurchaseResult), args.Error(1)
}

// GetLicenseState mocks the GetLicenseState method.
func (m *MockAccessUseCase) GetLicenseState(
	ctx context.Context,
	articleID uint64,
) (*licenseDomain.LicenseState, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licenseDomain.LicenseState), args.Error(1)
}

// CurrentPrice mocks the CurrentPrice method.
func (m *MockAccessUseCase) CurrentPrice(ctx context.Context, articleID uint64) (*big.Int, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

// GetLicenseMarket mocks the GetLicenseMarket method.
func (m *MockAccessUseCase) GetLicenseMarket(
	ctx context.Context,
	articleID uint64,
) (*licenseDomain.LicenseMarket, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licenseDomain.LicenseMarket), args.Error(1)
}

// ShouldRegenerate mocks the ShouldRegenerate method.
func (m *MockAccessUseCase) ShouldRegenerate(ctx context.Context, articleID uint64) (bool, error) {
	args := m.Called(ctx, articleID)
	return args.Bool(0), args.Error(1)
}

// Regenerate mocks the Regenerate method.
func (m *MockAccessUseCase) Regenerate(ctx context.Context, articleID uint64) (*licenseDomain.Transaction, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licenseDomain.Transaction), args.Error(1)
}
