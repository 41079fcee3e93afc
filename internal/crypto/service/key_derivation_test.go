package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/paywall/internal/crypto/domain"
)

const (
	publisherAddress = "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4"
	readerAddress    = "0xAb8483F64d9C6d1EcF9b849Ae677dD3315835cb2"
)

func TestPBKDF2KeyDerivation_DeriveKey(t *testing.T) {
	kdf := NewPBKDF2KeyDerivation("")
	params := cryptoDomain.KeyMaterialParams{
		OwnerAddress:   publisherAddress,
		ArticleID:      15,
		LicenseTokenID: cryptoDomain.UnboundTokenID,
	}

	t.Run("deterministic across calls", func(t *testing.T) {
		first, err := kdf.DeriveKey(params)
		require.NoError(t, err)
		second, err := kdf.DeriveKey(params)
		require.NoError(t, err)

		assert.Len(t, first, cryptoDomain.KeySize)
		assert.Equal(t, first, second)
	})

	t.Run("address case does not matter", func(t *testing.T) {
		mixed, err := kdf.DeriveKey(params)
		require.NoError(t, err)

		lower := params
		lower.OwnerAddress = cryptoDomain.NormalizeAddress(publisherAddress)
		lowered, err := kdf.DeriveKey(lower)
		require.NoError(t, err)

		assert.Equal(t, mixed, lowered)
	})

	t.Run("each input changes the key", func(t *testing.T) {
		base, err := kdf.DeriveKey(params)
		require.NoError(t, err)

		variants := []cryptoDomain.KeyMaterialParams{
			{OwnerAddress: readerAddress, ArticleID: 15, LicenseTokenID: "0"},
			{OwnerAddress: publisherAddress, ArticleID: 16, LicenseTokenID: "0"},
			{OwnerAddress: publisherAddress, ArticleID: 15, LicenseTokenID: "1"},
		}
		for _, v := range variants {
			key, err := kdf.DeriveKey(v)
			require.NoError(t, err)
			assert.NotEqual(t, base, key)
		}
	})

	t.Run("salt changes the key", func(t *testing.T) {
		base, err := kdf.DeriveKey(params)
		require.NoError(t, err)

		other, err := NewPBKDF2KeyDerivation("another-deployment").DeriveKey(params)
		require.NoError(t, err)

		assert.NotEqual(t, base, other)
	})

	t.Run("invalid params", func(t *testing.T) {
		key, err := kdf.DeriveKey(cryptoDomain.KeyMaterialParams{OwnerAddress: "0xdead", ArticleID: 1, LicenseTokenID: "0"})

		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidAddress)
		assert.Nil(t, key)
	})
}

func TestPBKDF2KeyDerivation_CacheKey(t *testing.T) {
	kdf := NewPBKDF2KeyDerivation("")

	key := kdf.CacheKey(readerAddress, 15)

	assert.Equal(t, "0xab8483f64d9c6d1ecf9b849ae677dd3315835cb2:15", key)
	assert.Equal(t, key, kdf.CacheKey(cryptoDomain.NormalizeAddress(readerAddress), 15))
	assert.NotEqual(t, key, kdf.CacheKey(publisherAddress, 15))
}
