package commands

import (
	"fmt"
	"io"
	"log/slog"

	authService "github.com/allisson/paywall/internal/auth/service"
)

// RunHashAPIKey prints the Argon2id hash for a publisher API key. When plainKey is empty a
// new random key is generated and printed alongside its hash.
//
// Output format (text):
//   - PUBLISHER_API_KEY="<plain key>"
//   - PUBLISHER_API_KEY_HASH="<hash>"
//
// Only the hash belongs in the server environment. Hand the plain key to the publisher.
func RunHashAPIKey(
	apiKeyService authService.APIKeyService,
	logger *slog.Logger,
	writer io.Writer,
	plainKey string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	var hashedKey string
	var err error
	if plainKey == "" {
		plainKey, hashedKey, err = apiKeyService.GenerateAPIKey()
		if err != nil {
			return fmt.Errorf("failed to generate api key: %w", err)
		}
		logger.Info("generated new publisher api key")
	} else {
		hashedKey, err = apiKeyService.HashAPIKey(plainKey)
		if err != nil {
			return fmt.Errorf("failed to hash api key: %w", err)
		}
	}

	if format == "json" {
		return writeJSON(writer, map[string]string{
			"api_key":      plainKey,
			"api_key_hash": hashedKey,
		})
	}

	_, _ = fmt.Fprintln(writer, "# Give the key to the publisher and keep only the hash on the server")
	_, _ = fmt.Fprintf(writer, "PUBLISHER_API_KEY=%q\n", plainKey)
	_, _ = fmt.Fprintf(writer, "PUBLISHER_API_KEY_HASH=%q\n", hashedKey)
	return nil
}
