package api

import (
	"regexp"
	"strconv"
	"strings"

	"cosmossdk.io/math"
	"github.com/gin-gonic/gin"

	onsen "github.com/onsenswap/onsenswap/types"
)

// Validation constants
const (
	MaxRequestSize   = 1 << 16 // 64 KB
	MaxAmountLength  = 78      // digits of 2^256
	MaxAddressLength = 100
	DefaultSwapLimit = 20
	MaxSwapLimit     = 500
)

// base-10 non-negative integer, no sign or leading zeros
var amountRegex = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

func (v *ValidationErrors) Error() string {
	parts := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}

// Account parses a bech32 account, recording a failure under field
func (v *ValidationErrors) Account(field, s string) onsen.AccountID {
	s = strings.TrimSpace(s)
	if s == "" {
		v.Add(field, "required")
		return onsen.ZeroAccountID
	}
	if len(s) > MaxAddressLength {
		v.Add(field, "too long")
		return onsen.ZeroAccountID
	}
	id, err := onsen.AccountIDFromBech32(s)
	if err != nil {
		v.Add(field, err.Error())
		return onsen.ZeroAccountID
	}
	return id
}

// Amount parses a non-negative integer amount
func (v *ValidationErrors) Amount(field, s string) math.Int {
	s = strings.TrimSpace(s)
	if len(s) > MaxAmountLength {
		v.Add(field, "too many digits")
		return math.Int{}
	}
	if !amountRegex.MatchString(s) {
		v.Add(field, "must be a non-negative base-10 integer")
		return math.Int{}
	}
	amount, ok := math.NewIntFromString(s)
	if !ok {
		v.Add(field, "out of range")
		return math.Int{}
	}
	return amount
}

// OptionalAmount is Amount that treats an empty string as unset
func (v *ValidationErrors) OptionalAmount(field, s string) math.Int {
	if strings.TrimSpace(s) == "" {
		return math.Int{}
	}
	return v.Amount(field, s)
}

// parseLimit reads the limit query parameter
func parseLimit(c *gin.Context, v *ValidationErrors) int {
	raw := c.Query("limit")
	if raw == "" {
		return DefaultSwapLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		v.Add("limit", "must be a positive integer")
		return 0
	}
	if limit > MaxSwapLimit {
		limit = MaxSwapLimit
	}
	return limit
}
