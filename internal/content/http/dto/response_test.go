package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	contentDomain "github.com/allisson/paywall/internal/content/domain"
	"github.com/allisson/paywall/internal/content/http/dto"
	licenseDomain "github.com/allisson/paywall/internal/license/domain"
)

func TestMapReadResultToResponse(t *testing.T) {
	reader := "0xab8483f64d9c6d1ecf9b849ae677dd3315835cb2"
	grant := licenseDomain.OwnershipGrant(15, reader)
	result := &contentDomain.ReadResult{
		Access: &licenseDomain.AccessRecord{
			ArticleID:     15,
			ReaderAddress: reader,
			HasAccess:     true,
			AccessType:    licenseDomain.AccessTypeNFTOwner,
			Grant:         &grant,
		},
		Content: &contentDomain.DecryptResult{Plaintext: "hello", Cached: false},
	}

	response := dto.MapReadResultToResponse(15, result)

	assert.Equal(t, uint64(15), response.ArticleID)
	assert.Equal(t, "hello", response.Content)
	assert.False(t, response.Cached)
	assert.Equal(t, "owned", response.Access.PurchaseState)
}

func TestMapPredictionToResponse(t *testing.T) {
	response := dto.MapPredictionToResponse(&contentDomain.ArticleIDPrediction{
		ArticleID:   1780315200,
		Provisional: true,
		Source:      contentDomain.PredictionSourceTimestamp,
	})

	assert.Equal(t, uint64(1780315200), response.ArticleID)
	assert.True(t, response.Provisional)
	assert.Equal(t, "timestamp", response.Source)
}
