// Package dto provides data transfer objects for license HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/paywall/internal/validation"
)

// BuyLicenseRequest buys a license for the reader. Seller is optional; the first holder
// other than the reader is used when it is empty.
type BuyLicenseRequest struct {
	Reader string `json:"reader"`
	Seller string `json:"seller"`
}

// Validate checks if the buy license request is valid.
func (r *BuyLicenseRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Reader, validation.Required, customValidation.EthAddress),
		validation.Field(&r.Seller, customValidation.EthAddress),
	)
}

// BurnLicenseRequest burns one of the reader's licenses to open an access window.
type BurnLicenseRequest struct {
	Reader string `json:"reader"`
}

// Validate checks if the burn license request is valid.
func (r *BurnLicenseRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Reader, validation.Required, customValidation.EthAddress),
	)
}

// PurchaseRequest drives the full buy-then-burn flow.
type PurchaseRequest struct {
	Reader string `json:"reader"`
	Seller string `json:"seller"`
}

// Validate checks if the purchase request is valid.
func (r *PurchaseRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Reader, validation.Required, customValidation.EthAddress),
		validation.Field(&r.Seller, customValidation.EthAddress),
	)
}
