package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/paywall/internal/errors"
)

const testReader = "0xAb8483F64d9C6d1EcF9b849Ae677dD3315835cb2"

func TestGrant_TokenID(t *testing.T) {
	tests := []struct {
		name     string
		grant    Grant
		expected string
	}{
		{"RealLicense", RealLicense(7, "7000003"), "7000003"},
		{"Ownership", OwnershipGrant(7, testReader), "nft_owner_7"},
		{"Burned", BurnedGrant(7, testReader), "burned_license_7_835cb2"},
		{"Unknown", Grant{Kind: "other"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.grant.TokenID())
		})
	}
}

func TestGrant_KeyTokenID(t *testing.T) {
	for _, grant := range []Grant{
		RealLicense(7, "7000003"),
		OwnershipGrant(7, testReader),
		BurnedGrant(7, testReader),
	} {
		t.Run(string(grant.Kind), func(t *testing.T) {
			id, err := grant.KeyTokenID()
			require.NoError(t, err)
			assert.Equal(t, "0", id)
		})
	}

	t.Run("UnknownKind", func(t *testing.T) {
		_, err := Grant{Kind: "other", ArticleID: 7}.KeyTokenID()
		assert.ErrorIs(t, err, ErrInvalidGrant)
	})
}

func TestGrant_Validate(t *testing.T) {
	tests := []struct {
		name    string
		grant   Grant
		wantErr bool
	}{
		{"ValidRealLicense", RealLicense(7, "1"), false},
		{"ValidOwnership", OwnershipGrant(7, testReader), false},
		{"ValidBurned", BurnedGrant(7, testReader), false},
		{"ZeroArticle", RealLicense(0, "1"), true},
		{"BlankToken", RealLicense(7, "  "), true},
		{"BadAddress", OwnershipGrant(7, "0x123"), true},
		{"UnknownKind", Grant{Kind: "x", ArticleID: 7}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grant.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidGrant)
				assert.ErrorIs(t, err, apperrors.ErrForbidden)
				return
			}
			assert.NoError(t, err)
		})
	}
}
