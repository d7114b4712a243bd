package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	onsen "github.com/onsenswap/onsenswap/types"
	"github.com/onsenswap/onsenswap/x/shared/keeper"
)

func TestValidateAuthority(t *testing.T) {
	alice := onsen.DeriveAccountID("test", []byte("alice"))
	bob := onsen.DeriveAccountID("test", []byte("bob"))

	tests := []struct {
		name     string
		expected onsen.AccountID
		actual   onsen.AccountID
		wantErr  bool
	}{
		{
			name:     "valid authority match",
			expected: alice,
			actual:   alice,
			wantErr:  false,
		},
		{
			name:     "authority mismatch",
			expected: alice,
			actual:   bob,
			wantErr:  true,
		},
		{
			name:     "zero caller",
			expected: alice,
			actual:   onsen.ZeroAccountID,
			wantErr:  true,
		},
		{
			name:     "renounced authority",
			expected: onsen.ZeroAccountID,
			actual:   alice,
			wantErr:  true,
		},
		{
			name:     "renounced authority rejects zero caller",
			expected: onsen.ZeroAccountID,
			actual:   onsen.ZeroAccountID,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := keeper.ValidateAuthority(tt.expected, tt.actual)
			if tt.wantErr {
				require.ErrorIs(t, err, onsen.ErrUnauthorized)
				return
			}
			require.NoError(t, err)
		})
	}
}
