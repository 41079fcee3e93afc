package dto

import (
	"time"

	contentDomain "github.com/allisson/paywall/internal/content/domain"
	licenseDTO "github.com/allisson/paywall/internal/license/http/dto"
)

// EncryptMetadataResponse describes a sealed payload in API responses.
type EncryptMetadataResponse struct {
	ArticleID        uint64    `json:"article_id"`
	PublisherAddress string    `json:"publisher_address"`
	PayloadVersion   string    `json:"payload_version"`
	Algorithm        string    `json:"algorithm"`
	PlaintextSize    int       `json:"plaintext_size"`
	PayloadSize      int       `json:"payload_size"`
	EncryptedAt      time.Time `json:"encrypted_at"`
}

// EncryptResponse carries the sealed payload and its metadata.
type EncryptResponse struct {
	Payload  string                  `json:"payload"`
	Metadata EncryptMetadataResponse `json:"metadata"`
}

// MapEncryptResultToResponse converts an encrypt result to an API response.
func MapEncryptResultToResponse(result *contentDomain.EncryptResult) EncryptResponse {
	return EncryptResponse{
		Payload: result.Payload,
		Metadata: EncryptMetadataResponse{
			ArticleID:        result.Metadata.ArticleID,
			PublisherAddress: result.Metadata.PublisherAddress,
			PayloadVersion:   result.Metadata.PayloadVersion,
			Algorithm:        string(result.Metadata.Algorithm),
			PlaintextSize:    result.Metadata.PlaintextSize,
			PayloadSize:      result.Metadata.PayloadSize,
			EncryptedAt:      result.Metadata.EncryptedAt,
		},
	}
}

// PublishResponse omits the payload; it is already stored.
type PublishResponse struct {
	Metadata EncryptMetadataResponse `json:"metadata"`
}

// EstimateSizeResponse reports the exact encrypted wire length.
type EstimateSizeResponse struct {
	PlaintextSize int `json:"plaintext_size"`
	EncryptedSize int `json:"encrypted_size"`
}

// ArticleIDPredictionResponse is a provisional id for a new article.
type ArticleIDPredictionResponse struct {
	ArticleID   uint64 `json:"article_id"`
	Provisional bool   `json:"provisional"`
	Source      string `json:"source"`
}

// MapPredictionToResponse converts a prediction to an API response.
func MapPredictionToResponse(prediction *contentDomain.ArticleIDPrediction) ArticleIDPredictionResponse {
	return ArticleIDPredictionResponse{
		ArticleID:   prediction.ArticleID,
		Provisional: prediction.Provisional,
		Source:      prediction.Source,
	}
}

// ReadArticleResponse is the decrypted article together with the access that allowed it.
type ReadArticleResponse struct {
	ArticleID uint64                    `json:"article_id"`
	Content   string                    `json:"content"`
	Cached    bool                      `json:"cached"`
	Access    licenseDTO.AccessResponse `json:"access"`
}

// MapReadResultToResponse converts a read result to an API response.
func MapReadResultToResponse(articleID uint64, result *contentDomain.ReadResult) ReadArticleResponse {
	return ReadArticleResponse{
		ArticleID: articleID,
		Content:   result.Content.Plaintext,
		Cached:    result.Content.Cached,
		Access:    licenseDTO.MapAccessToResponse(result.Access),
	}
}

// AccessDeniedResponse explains why a read was refused and what the reader can do next.
type AccessDeniedResponse struct {
	Error   string                    `json:"error"`
	Message string                    `json:"message"`
	Access  licenseDTO.AccessResponse `json:"access"`
}

// EvictReaderResponse reports how many cached articles were dropped.
type EvictReaderResponse struct {
	ReaderAddress string `json:"reader_address"`
	Evicted       int    `json:"evicted"`
}
