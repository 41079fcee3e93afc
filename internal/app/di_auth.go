package app

import (
	authService "github.com/allisson/paywall/internal/auth/service"
)

// APIKeyService returns the service that verifies publisher API keys.
func (c *Container) APIKeyService() authService.APIKeyService {
	c.apiKeyServiceInit.Do(func() {
		c.apiKeyService = authService.NewAPIKeyService()
	})
	return c.apiKeyService
}
