package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const publisher = "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4"

func TestEncryptArticleRequest_Validate(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		req := EncryptArticleRequest{Content: "hello", PublisherAddress: publisher, ArticleID: 15}
		assert.NoError(t, req.Validate())
	})

	t.Run("Error_MissingArticleID", func(t *testing.T) {
		req := EncryptArticleRequest{Content: "hello", PublisherAddress: publisher}
		err := req.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "article_id")
	})

	t.Run("Error_InvalidPublisher", func(t *testing.T) {
		req := EncryptArticleRequest{Content: "hello", PublisherAddress: "0x5B38", ArticleID: 15}
		err := req.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "publisher_address")
	})

	t.Run("Error_TokenWithWhitespace", func(t *testing.T) {
		req := EncryptArticleRequest{
			Content:          "hello",
			PublisherAddress: publisher,
			ArticleID:        15,
			LicenseTokenID:   " 7 ",
		}
		err := req.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "license_token_id")
	})

	t.Run("Success_ToParams", func(t *testing.T) {
		req := EncryptArticleRequest{Content: "hello", PublisherAddress: publisher, ArticleID: 15, LicenseTokenID: "7"}
		params := req.ToParams()
		assert.Equal(t, publisher, params.PublisherAddress)
		assert.Equal(t, uint64(15), params.ArticleID)
		assert.Equal(t, "7", params.LicenseTokenID)
	})
}

func TestPublishArticleRequest_Validate(t *testing.T) {
	assert.NoError(t, (&PublishArticleRequest{Content: "hello", PublisherAddress: publisher}).Validate())
	assert.Error(t, (&PublishArticleRequest{Content: "\n\t", PublisherAddress: publisher}).Validate())
	assert.Error(t, (&PublishArticleRequest{Content: "hello"}).Validate())
}

func TestEstimateSizeRequest(t *testing.T) {
	t.Run("Success_ContentWins", func(t *testing.T) {
		req := EstimateSizeRequest{Content: "hello", PlaintextSize: 99}
		assert.NoError(t, req.Validate())
		assert.Equal(t, 5, req.Size())
	})

	t.Run("Success_SizeOnly", func(t *testing.T) {
		req := EstimateSizeRequest{PlaintextSize: 99}
		assert.NoError(t, req.Validate())
		assert.Equal(t, 99, req.Size())
	})

	t.Run("Error_Negative", func(t *testing.T) {
		req := EstimateSizeRequest{PlaintextSize: -1}
		assert.Error(t, req.Validate())
	})

	t.Run("Error_Empty", func(t *testing.T) {
		req := EstimateSizeRequest{}
		assert.Error(t, req.Validate())
	})
}
