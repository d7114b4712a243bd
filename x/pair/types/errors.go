package types

import (
	"errors"
	"fmt"

	sdkerrors "cosmossdk.io/errors"

	onsen "github.com/onsenswap/onsenswap/types"
)

// Pair module sentinel errors
var (
	// Swap validation errors
	ErrInsufficientOutputAmount = sdkerrors.Register(ModuleName, 2, "insufficient output amount")
	ErrInsufficientLiquidity    = sdkerrors.Register(ModuleName, 3, "insufficient liquidity")
	ErrInvalidRecipient         = sdkerrors.Register(ModuleName, 4, "invalid recipient")

	// Execution errors
	ErrTransferFailed    = sdkerrors.Register(ModuleName, 5, "token transfer failed")
	ErrInvariantViolated = sdkerrors.Register(ModuleName, 6, "constant product invariant violated")

	// Administrative errors
	ErrNotOwner               = sdkerrors.Register(ModuleName, 7, "caller is not the owner")
	ErrReserveAccountingError = sdkerrors.Register(ModuleName, 8, "balance below tracked reserve")
	ErrNewOwnerIsZero         = sdkerrors.Register(ModuleName, 9, "new owner is the zero account")

	// Construction and state errors
	ErrInvalidAssetPair    = sdkerrors.Register(ModuleName, 10, "invalid asset pair")
	ErrPoolAlreadyExists   = sdkerrors.Register(ModuleName, 11, "pool already initialized")
	ErrPoolNotFound        = sdkerrors.Register(ModuleName, 12, "pool not initialized")
	ErrInvalidLedger       = sdkerrors.Register(ModuleName, 13, "invalid ledger state")
	ErrStateCorruption     = sdkerrors.Register(ModuleName, 14, "state corruption detected")
	ErrReentrancy          = sdkerrors.Register(ModuleName, 15, "reentrant call rejected")
	ErrInvalidAmount       = sdkerrors.Register(ModuleName, 16, "invalid amount")
	ErrArithmeticUnderflow = sdkerrors.Register(ModuleName, 17, "arithmetic underflow")
	ErrInvalidRequest      = sdkerrors.Register(ModuleName, 18, "invalid request")
)

// TransferError reports a failed call into a token collaborator. It matches
// both ErrTransferFailed and the collaborator's own error under errors.Is.
type TransferError struct {
	Token onsen.AccountID
	Op    string
	Err   error
}

// NewTransferError wraps a collaborator failure for the given token.
func NewTransferError(token onsen.AccountID, op string, err error) *TransferError {
	return &TransferError{Token: token, Op: op, Err: err}
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s: %s on %s: %s", ErrTransferFailed.Error(), e.Op, e.Token, e.Err)
}

func (e *TransferError) Unwrap() []error {
	return []error{ErrTransferFailed, e.Err}
}

// ErrorWithRecovery wraps an error with recovery suggestions
type ErrorWithRecovery struct {
	Err      error
	Recovery string
}

func (e *ErrorWithRecovery) Error() string {
	return e.Err.Error()
}

func (e *ErrorWithRecovery) Unwrap() error {
	return e.Err
}

// RecoverySuggestions provides actionable recovery steps for each error type
var RecoverySuggestions = map[error]string{
	ErrInsufficientOutputAmount: "Request a positive amount of at least one asset. Both outputs were zero.",
	ErrInsufficientLiquidity:    "Requested output must be strictly below the current reserve. Query reserves and lower the requested amount.",
	ErrInvalidRecipient:         "Proceeds cannot be sent to either token contract. Use a holder account as recipient.",
	ErrTransferFailed:           "A token contract rejected the transfer. Check the pool's token balances and the token's own error. Outbound transfers that already succeeded are not reverted by the pair.",
	ErrInvariantViolated:        "Deposited amounts do not cover the requested output plus the 0.3% fee. Send more input to the pool before swapping, or request less output.",
	ErrNotOwner:                 "Only the pool owner may call this operation. Query the owner and sign with that account.",
	ErrReserveAccountingError:   "A token balance is below its tracked reserve. The pool's holdings were reduced outside of a swap; investigate before skimming.",
	ErrNewOwnerIsZero:           "Use renounce-ownership to clear the owner. Ownership cannot be transferred to the zero account.",
	ErrReentrancy:               "The pool is already executing an operation. Nested calls from token callbacks are rejected; retry after the outer call returns.",
	ErrStateCorruption:          "CRITICAL: stored pool ledger could not be decoded. Restore from an exported genesis file.",
}

// WrapWithRecovery wraps an error with recovery suggestion
func WrapWithRecovery(err error, msg string, args ...interface{}) error {
	wrapped := sdkerrors.Wrapf(err, msg, args...)

	if suggestion, ok := RecoverySuggestions[err]; ok {
		return &ErrorWithRecovery{
			Err:      wrapped,
			Recovery: suggestion,
		}
	}

	return wrapped
}

// recoveryOrder fixes lookup precedence when an error matches several sentinels,
// e.g. a TransferError caused by ErrReentrancy.
var recoveryOrder = []error{
	ErrInsufficientOutputAmount,
	ErrInsufficientLiquidity,
	ErrInvalidRecipient,
	ErrTransferFailed,
	ErrInvariantViolated,
	ErrNotOwner,
	ErrReserveAccountingError,
	ErrNewOwnerIsZero,
	ErrReentrancy,
	ErrStateCorruption,
}

// GetRecoverySuggestion returns the recovery suggestion for an error
func GetRecoverySuggestion(err error) string {
	for _, base := range recoveryOrder {
		if errors.Is(err, base) {
			return RecoverySuggestions[base]
		}
	}

	return "No recovery suggestion available. Check the error message and query the pool ledger."
}
