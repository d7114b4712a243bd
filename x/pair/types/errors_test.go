package types

import (
	"errors"
	"testing"

	sdkerrors "cosmossdk.io/errors"

	onsen "github.com/onsenswap/onsenswap/types"
)

func TestErrorDefinitions(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  uint32
		wantSpace string
	}{
		{"ErrInsufficientOutputAmount", ErrInsufficientOutputAmount, 2, ModuleName},
		{"ErrInsufficientLiquidity", ErrInsufficientLiquidity, 3, ModuleName},
		{"ErrInvalidRecipient", ErrInvalidRecipient, 4, ModuleName},
		{"ErrTransferFailed", ErrTransferFailed, 5, ModuleName},
		{"ErrInvariantViolated", ErrInvariantViolated, 6, ModuleName},
		{"ErrNotOwner", ErrNotOwner, 7, ModuleName},
		{"ErrReserveAccountingError", ErrReserveAccountingError, 8, ModuleName},
		{"ErrNewOwnerIsZero", ErrNewOwnerIsZero, 9, ModuleName},
		{"ErrInvalidAssetPair", ErrInvalidAssetPair, 10, ModuleName},
		{"ErrPoolAlreadyExists", ErrPoolAlreadyExists, 11, ModuleName},
		{"ErrPoolNotFound", ErrPoolNotFound, 12, ModuleName},
		{"ErrInvalidLedger", ErrInvalidLedger, 13, ModuleName},
		{"ErrStateCorruption", ErrStateCorruption, 14, ModuleName},
		{"ErrReentrancy", ErrReentrancy, 15, ModuleName},
		{"ErrInvalidAmount", ErrInvalidAmount, 16, ModuleName},
		{"ErrArithmeticUnderflow", ErrArithmeticUnderflow, 17, ModuleName},
		{"ErrInvalidRequest", ErrInvalidRequest, 18, ModuleName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sdkErr *sdkerrors.Error
			if !errors.As(tt.err, &sdkErr) {
				t.Fatalf("Error is not an sdkerrors.Error")
			}

			if sdkErr.ABCICode() != tt.wantCode {
				t.Errorf("Expected code %d, got %d", tt.wantCode, sdkErr.ABCICode())
			}

			if sdkErr.Codespace() != tt.wantSpace {
				t.Errorf("Expected codespace %s, got %s", tt.wantSpace, sdkErr.Codespace())
			}

			if tt.err.Error() == "" {
				t.Error("Error message is empty")
			}
		})
	}
}

func TestTransferError(t *testing.T) {
	cause := errors.New("receiver said no")
	token := onsen.TestAccountID("token")
	err := NewTransferError(token, "transfer_from", cause)

	if !errors.Is(err, ErrTransferFailed) {
		t.Error("TransferError should match ErrTransferFailed")
	}
	if !errors.Is(err, cause) {
		t.Error("TransferError should match its cause")
	}

	var te *TransferError
	if !errors.As(sdkerrors.Wrap(err, "outer"), &te) {
		t.Fatal("Expected TransferError through a wrap")
	}
	if te.Token != token || te.Op != "transfer_from" {
		t.Errorf("Unexpected fields %s/%s", te.Token, te.Op)
	}
}

func TestWrapWithRecovery(t *testing.T) {
	tests := []struct {
		name             string
		baseErr          error
		msg              string
		args             []interface{}
		expectRecovery   bool
		expectedRecovery string
	}{
		{
			name:             "error with recovery suggestion",
			baseErr:          ErrInsufficientLiquidity,
			msg:              "requested %d",
			args:             []interface{}{1000},
			expectRecovery:   true,
			expectedRecovery: RecoverySuggestions[ErrInsufficientLiquidity],
		},
		{
			name:           "error without recovery suggestion",
			baseErr:        errors.New("unknown error"),
			msg:            "wrapped error",
			args:           []interface{}{},
			expectRecovery: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapWithRecovery(tt.baseErr, tt.msg, tt.args...)

			var errWithRecovery *ErrorWithRecovery
			found := errors.As(wrapped, &errWithRecovery)
			if found != tt.expectRecovery {
				t.Fatalf("Expected recovery %v, got %v", tt.expectRecovery, found)
			}
			if found && errWithRecovery.Recovery != tt.expectedRecovery {
				t.Errorf("Expected recovery %q, got %q", tt.expectedRecovery, errWithRecovery.Recovery)
			}
			if !errors.Is(wrapped, tt.baseErr) {
				t.Error("Wrapped error lost its base")
			}
		})
	}
}

func TestGetRecoverySuggestion(t *testing.T) {
	tests := []struct {
		name               string
		err                error
		expectedSuggestion string
	}{
		{
			name:               "invariant",
			err:                ErrInvariantViolated,
			expectedSuggestion: RecoverySuggestions[ErrInvariantViolated],
		},
		{
			name:               "double wrapped error",
			err:                sdkerrors.Wrap(sdkerrors.Wrap(ErrNotOwner, "wrap1"), "wrap2"),
			expectedSuggestion: RecoverySuggestions[ErrNotOwner],
		},
		{
			name:               "transfer failure caused by reentrancy",
			err:                NewTransferError(onsen.TestAccountID("token"), "transfer_from", ErrReentrancy),
			expectedSuggestion: RecoverySuggestions[ErrTransferFailed],
		},
		{
			name:               "unknown error",
			err:                errors.New("unknown"),
			expectedSuggestion: "No recovery suggestion available. Check the error message and query the pool ledger.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetRecoverySuggestion(tt.err); got != tt.expectedSuggestion {
				t.Errorf("Expected %q, got %q", tt.expectedSuggestion, got)
			}
		})
	}
}
