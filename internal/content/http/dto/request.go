// Package dto provides data transfer objects for content HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	contentDomain "github.com/allisson/paywall/internal/content/domain"
	customValidation "github.com/allisson/paywall/internal/validation"
)

// EncryptArticleRequest seals article text without storing it.
type EncryptArticleRequest struct {
	Content          string `json:"content"`
	PublisherAddress string `json:"publisher_address"`
	ArticleID        uint64 `json:"article_id"`
	LicenseTokenID   string `json:"license_token_id"`
}

// Validate checks if the encrypt request is valid.
func (r *EncryptArticleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Content, validation.Required, customValidation.NotBlank),
		validation.Field(&r.PublisherAddress, validation.Required, customValidation.EthAddress),
		validation.Field(&r.ArticleID, validation.Required),
		validation.Field(&r.LicenseTokenID, customValidation.NoWhitespace),
	)
}

// ToParams converts the request to use case parameters.
func (r *EncryptArticleRequest) ToParams() contentDomain.EncryptParams {
	return contentDomain.EncryptParams{
		PublisherAddress: r.PublisherAddress,
		ArticleID:        r.ArticleID,
		LicenseTokenID:   r.LicenseTokenID,
	}
}

// PublishArticleRequest seals and stores article text. The article id comes from the URL.
type PublishArticleRequest struct {
	Content          string `json:"content"`
	PublisherAddress string `json:"publisher_address"`
}

// Validate checks if the publish request is valid.
func (r *PublishArticleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Content, validation.Required, customValidation.NotBlank),
		validation.Field(&r.PublisherAddress, validation.Required, customValidation.EthAddress),
	)
}

// EstimateSizeRequest asks for the encrypted size of a plaintext, given either the text
// itself or its byte length.
type EstimateSizeRequest struct {
	Content       string `json:"content"`
	PlaintextSize int    `json:"plaintext_size"`
}

// Validate checks if the estimate request is valid.
func (r *EstimateSizeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PlaintextSize, validation.Min(0)),
		validation.Field(&r.Content,
			validation.When(r.PlaintextSize == 0, validation.Required),
		),
	)
}

// Size returns the plaintext byte length to estimate for.
func (r *EstimateSizeRequest) Size() int {
	if r.Content != "" {
		return len(r.Content)
	}
	return r.PlaintextSize
}
