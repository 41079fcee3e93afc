package dto

import (
	"math/big"
	"time"

	licenseDomain "github.com/allisson/paywall/internal/license/domain"
)

// AccessResponse represents a reader's access to an article in API responses.
type AccessResponse struct {
	ArticleID       uint64     `json:"article_id"`
	ReaderAddress   string     `json:"reader_address"`
	HasAccess       bool       `json:"has_access"`
	AccessType      string     `json:"access_type"`
	TokenID         string     `json:"token_id,omitempty"`
	ExpiryTime      *time.Time `json:"expiry_time,omitempty"`
	NeedsActivation bool       `json:"needs_activation"`
	PurchaseState   string     `json:"purchase_state"`
}

// MapAccessToResponse converts an access record to an API response.
func MapAccessToResponse(record *licenseDomain.AccessRecord) AccessResponse {
	return AccessResponse{
		ArticleID:       record.ArticleID,
		ReaderAddress:   record.ReaderAddress,
		HasAccess:       record.HasAccess,
		AccessType:      string(record.AccessType),
		TokenID:         record.TokenID(),
		ExpiryTime:      record.ExpiryTime,
		NeedsActivation: record.NeedsActivation,
		PurchaseState:   string(record.PurchaseState()),
	}
}

// TransactionResponse represents a submitted ledger transaction.
type TransactionResponse struct {
	Hash      string `json:"hash"`
	ArticleID uint64 `json:"article_id"`
	ValueWei  string `json:"value_wei"`
}

// MapTransactionToResponse converts a transaction to an API response.
func MapTransactionToResponse(tx *licenseDomain.Transaction) TransactionResponse {
	return TransactionResponse{
		Hash:      tx.Hash,
		ArticleID: tx.ArticleID,
		ValueWei:  weiString(tx.Value),
	}
}

// PurchaseResponse reports where the purchase flow ended.
type PurchaseResponse struct {
	State        string                `json:"state"`
	Transactions []TransactionResponse `json:"transactions"`
	Access       *AccessResponse       `json:"access,omitempty"`
}

// MapPurchaseToResponse converts a purchase result to an API response.
func MapPurchaseToResponse(result *licenseDomain.PurchaseResult) PurchaseResponse {
	txs := make([]TransactionResponse, 0, len(result.Transactions))
	for _, tx := range result.Transactions {
		txs = append(txs, MapTransactionToResponse(tx))
	}

	response := PurchaseResponse{
		State:        string(result.State),
		Transactions: txs,
	}
	if result.Access != nil {
		access := MapAccessToResponse(result.Access)
		response.Access = &access
	}
	return response
}

// LicenseMarketResponse is the license supply, price and holders for an article.
type LicenseMarketResponse struct {
	ArticleID            uint64    `json:"article_id"`
	EditionNumber        uint64    `json:"edition_number"`
	TotalGenerated       uint64    `json:"total_generated"`
	ActiveLicenses       uint64    `json:"active_licenses"`
	LastRegenerationTime time.Time `json:"last_regeneration_time"`
	CurrentPriceWei      string    `json:"current_price_wei"`
	Holders              []string  `json:"holders"`
	ShouldRegenerate     bool      `json:"should_regenerate"`
}

// MapMarketToResponse converts a license market view to an API response.
func MapMarketToResponse(market *licenseDomain.LicenseMarket) LicenseMarketResponse {
	holders := market.Holders
	if holders == nil {
		holders = []string{}
	}

	return LicenseMarketResponse{
		ArticleID:            market.ArticleID,
		EditionNumber:        market.State.EditionNumber,
		TotalGenerated:       market.State.TotalGenerated,
		ActiveLicenses:       market.State.ActiveLicenses,
		LastRegenerationTime: market.State.LastRegenerationTime,
		CurrentPriceWei:      weiString(market.CurrentPrice),
		Holders:              holders,
		ShouldRegenerate:     market.ShouldRegenerate,
	}
}

// RegenerationResponse reports whether an article's licenses are due for regeneration.
type RegenerationResponse struct {
	ArticleID        uint64 `json:"article_id"`
	ShouldRegenerate bool   `json:"should_regenerate"`
}

func weiString(value *big.Int) string {
	if value == nil {
		return "0"
	}
	return value.String()
}
