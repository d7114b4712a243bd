package api

import (
	"errors"
	"fmt"
	"net/http"

	sdkerrors "cosmossdk.io/errors"
	"github.com/gin-gonic/gin"

	onsen "github.com/onsenswap/onsenswap/types"
	pairtypes "github.com/onsenswap/onsenswap/x/pair/types"
	tokentypes "github.com/onsenswap/onsenswap/x/token/types"
)

// errorStatuses maps registered errors to HTTP status codes. Anything not
// listed is a 500.
var errorStatuses = []struct {
	err    *sdkerrors.Error
	status int
}{
	{pairtypes.ErrStateCorruption, http.StatusInternalServerError},
	{tokentypes.ErrStateCorruption, http.StatusInternalServerError},
	{pairtypes.ErrTransferFailed, http.StatusBadGateway},

	{onsen.ErrInvalidAccount, http.StatusBadRequest},
	{pairtypes.ErrInvalidRequest, http.StatusBadRequest},
	{pairtypes.ErrInvalidAmount, http.StatusBadRequest},
	{pairtypes.ErrInvalidAssetPair, http.StatusBadRequest},
	{tokentypes.ErrInvalidAmount, http.StatusBadRequest},
	{tokentypes.ErrInvalidSymbol, http.StatusBadRequest},

	{onsen.ErrUnauthorized, http.StatusForbidden},
	{pairtypes.ErrNotOwner, http.StatusForbidden},

	{pairtypes.ErrPoolNotFound, http.StatusNotFound},
	{tokentypes.ErrTokenNotFound, http.StatusNotFound},

	{pairtypes.ErrPoolAlreadyExists, http.StatusConflict},
	{tokentypes.ErrTokenExists, http.StatusConflict},
	{pairtypes.ErrReentrancy, http.StatusConflict},

	{pairtypes.ErrInsufficientOutputAmount, http.StatusUnprocessableEntity},
	{pairtypes.ErrInsufficientLiquidity, http.StatusUnprocessableEntity},
	{pairtypes.ErrInvalidRecipient, http.StatusUnprocessableEntity},
	{pairtypes.ErrInvariantViolated, http.StatusUnprocessableEntity},
	{pairtypes.ErrReserveAccountingError, http.StatusUnprocessableEntity},
	{pairtypes.ErrNewOwnerIsZero, http.StatusUnprocessableEntity},
	{pairtypes.ErrArithmeticUnderflow, http.StatusUnprocessableEntity},
	{tokentypes.ErrInsufficientBalance, http.StatusUnprocessableEntity},
	{tokentypes.ErrReceiverRejected, http.StatusUnprocessableEntity},
	{tokentypes.ErrSupplyOverflow, http.StatusUnprocessableEntity},
}

// classify returns the status code for err and the registered error it
// matched, if any. The table order decides between several matches.
func classify(err error) (int, *sdkerrors.Error) {
	var verr *ValidationErrors
	if errors.As(err, &verr) {
		return http.StatusBadRequest, nil
	}
	for _, entry := range errorStatuses {
		if errors.Is(err, entry.err) {
			return entry.status, entry.err
		}
	}
	return http.StatusInternalServerError, nil
}

// HTTPStatus returns the status code for err
func HTTPStatus(err error) int {
	status, _ := classify(err)
	return status
}

// respondError writes err as an ErrorResponse. Registered errors carry their
// "<codespace>:<code>" and, for the pair, a recovery suggestion.
func respondError(c *gin.Context, err error) {
	var verr *ValidationErrors
	if errors.As(err, &verr) {
		c.Set(errorCodeKey, "VALIDATION_ERROR")
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"code":   "VALIDATION_ERROR",
			"fields": verr.Errors,
		})
		return
	}

	status, registered := classify(err)
	if registered == nil {
		c.Set(errorCodeKey, "INTERNAL_ERROR")
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, ErrorResponse{Error: "Internal server error", Code: "INTERNAL_ERROR"})
		return
	}

	code := fmt.Sprintf("%s:%d", registered.Codespace(), registered.ABCICode())
	c.Set(errorCodeKey, code)

	resp := ErrorResponse{Error: err.Error(), Code: code}
	if registered.Codespace() == pairtypes.ModuleName && registered != pairtypes.ErrInvalidRequest {
		resp.Details = pairtypes.GetRecoverySuggestion(err)
	}
	c.AbortWithStatusJSON(status, resp)
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		verr := &ValidationErrors{}
		verr.Add("body", err.Error())
		respondError(c, verr)
		return false
	}
	return true
}
