package app

import (
	"fmt"

	licenseHTTP "github.com/allisson/paywall/internal/license/http"
	licenseUseCase "github.com/allisson/paywall/internal/license/usecase"
)

// AccessUseCase returns the license access use case.
func (c *Container) AccessUseCase() (licenseUseCase.AccessUseCase, error) {
	var err error
	c.accessUseCaseInit.Do(func() {
		c.accessUseCase, err = c.initAccessUseCase()
		if err != nil {
			c.initErrors["accessUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accessUseCase"]; exists {
		return nil, storedErr
	}
	return c.accessUseCase, nil
}

// LicenseHandler returns the license HTTP handler.
func (c *Container) LicenseHandler() (*licenseHTTP.LicenseHandler, error) {
	var err error
	c.licenseHandlerInit.Do(func() {
		c.licenseHandler, err = c.initLicenseHandler()
		if err != nil {
			c.initErrors["licenseHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["licenseHandler"]; exists {
		return nil, storedErr
	}
	return c.licenseHandler, nil
}

// initAccessUseCase creates the access use case with all its dependencies.
func (c *Container) initAccessUseCase() (licenseUseCase.AccessUseCase, error) {
	licenseLedger, err := c.LicenseLedger()
	if err != nil {
		return nil, fmt.Errorf("failed to get license ledger for access use case: %w", err)
	}

	gasReimbursement, err := c.config.GasReimbursement()
	if err != nil {
		return nil, fmt.Errorf("failed to parse gas reimbursement: %w", err)
	}

	baseUseCase := licenseUseCase.NewAccessUseCase(
		licenseUseCase.Config{GasReimbursement: gasReimbursement},
		licenseLedger,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for access use case: %w", err)
		}
		return licenseUseCase.NewAccessUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initLicenseHandler creates the license HTTP handler with all its dependencies.
func (c *Container) initLicenseHandler() (*licenseHTTP.LicenseHandler, error) {
	accessUseCase, err := c.AccessUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get access use case for license handler: %w", err)
	}

	return licenseHTTP.NewLicenseHandler(accessUseCase, c.Logger()), nil
}
