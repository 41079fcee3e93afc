package commands

import (
	"fmt"
	"io"

	contentUseCase "github.com/allisson/paywall/internal/content/usecase"
)

// RunEstimateSize prints the exact encrypted payload size for a plaintext. The plaintext
// is read from inputPath or the IO reader unless plaintextSize is positive.
func RunEstimateSize(
	encryptionUseCase contentUseCase.EncryptionUseCase,
	streams IOTuple,
	inputPath string,
	plaintextSize int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if plaintextSize < 0 {
		return fmt.Errorf("size must be a positive number, got: %d", plaintextSize)
	}

	if plaintextSize == 0 {
		content, err := readContent(streams.Reader, inputPath)
		if err != nil {
			return err
		}
		plaintextSize = len(content)
	}

	encryptedSize := encryptionUseCase.EstimateEncryptedSize(plaintextSize)

	if format == "json" {
		return writeJSON(streams.Writer, map[string]int{
			"plaintext_size": plaintextSize,
			"encrypted_size": encryptedSize,
		})
	}

	return writeSizeText(streams.Writer, plaintextSize, encryptedSize)
}

func writeSizeText(writer io.Writer, plaintextSize, encryptedSize int) error {
	_, err := fmt.Fprintf(writer, "Plaintext: %d bytes\nEncrypted: %d bytes\n", plaintextSize, encryptedSize)
	return err
}
