package app

import (
	"fmt"

	"github.com/allisson/paywall/internal/ledger"
)

// ArticleReader returns the ledger reader for canonical article records.
func (c *Container) ArticleReader() (ledger.ArticleReader, error) {
	if err := c.initLedgerOnce(); err != nil {
		return nil, err
	}
	return c.articleReader, nil
}

// LicenseLedger returns the ledger used for ownership, licenses and purchases.
func (c *Container) LicenseLedger() (ledger.LicenseLedger, error) {
	if err := c.initLedgerOnce(); err != nil {
		return nil, err
	}
	return c.licenseLedger, nil
}

func (c *Container) initLedgerOnce() error {
	var err error
	c.ledgerInit.Do(func() {
		err = c.initLedger()
		if err != nil {
			c.initErrors["ledger"] = err
		}
	})
	if err != nil {
		return err
	}
	if storedErr, exists := c.initErrors["ledger"]; exists {
		return storedErr
	}
	return nil
}

// initLedger selects the ledger implementation based on the configured driver.
func (c *Container) initLedger() error {
	switch c.config.LedgerDriver {
	case "http":
		client := ledger.NewGatewayClient(ledger.GatewayConfig{
			BaseURL:         c.config.LedgerURL,
			ArticleContract: c.config.LedgerArticleContract,
			LicenseContract: c.config.LedgerLicenseContract,
			SignerAddress:   c.config.LedgerSignerAddress,
			APIKey:          c.config.LedgerAPIKey,
			Timeout:         c.config.LedgerTimeout,
		})
		c.articleReader = client
		c.licenseLedger = client
	case "memory":
		c.Logger().Warn("using in-memory ledger, state is lost on restart")
		memory := ledger.NewMemoryLedger()
		c.articleReader = memory
		c.licenseLedger = memory
	default:
		return fmt.Errorf("unsupported ledger driver: %s", c.config.LedgerDriver)
	}
	return nil
}
