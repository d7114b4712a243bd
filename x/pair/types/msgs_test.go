package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	onsen "github.com/onsenswap/onsenswap/types"
	"github.com/onsenswap/onsenswap/x/pair/types"
)

func TestMsgCreatePair_ValidateBasic(t *testing.T) {
	tests := []struct {
		name string
		msg  types.MsgCreatePair
		err  error
	}{
		{
			name: "valid",
			msg:  types.MsgCreatePair{Creator: creator.String(), Asset0: asset0.String(), Asset1: asset1.String()},
		},
		{
			name: "invalid creator",
			msg:  types.MsgCreatePair{Creator: "x", Asset0: asset0.String(), Asset1: asset1.String()},
			err:  onsen.ErrInvalidAccount,
		},
		{
			name: "invalid asset1",
			msg:  types.MsgCreatePair{Creator: creator.String(), Asset0: asset0.String()},
			err:  onsen.ErrInvalidAccount,
		},
		{
			name: "same assets",
			msg:  types.MsgCreatePair{Creator: creator.String(), Asset0: asset0.String(), Asset1: asset0.String()},
			err:  types.ErrInvalidAssetPair,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.ValidateBasic()
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestMsgSwap_ValidateBasic(t *testing.T) {
	recipient := onsen.TestAccountID("recipient").String()

	tests := []struct {
		name string
		msg  types.MsgSwap
		err  error
	}{
		{
			name: "valid",
			msg:  types.MsgSwap{Recipient: recipient, Amount0Out: math.ZeroInt(), Amount1Out: math.NewInt(5)},
		},
		{
			// both zero is a keeper error, not a stateless one
			name: "both zero",
			msg:  types.MsgSwap{Recipient: recipient, Amount0Out: math.ZeroInt(), Amount1Out: math.ZeroInt()},
		},
		{
			name: "unset amount",
			msg:  types.MsgSwap{Recipient: recipient, Amount0Out: math.ZeroInt()},
			err:  types.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			msg:  types.MsgSwap{Recipient: recipient, Amount0Out: math.NewInt(-3), Amount1Out: math.ZeroInt()},
			err:  types.ErrInvalidAmount,
		},
		{
			name: "bad recipient",
			msg:  types.MsgSwap{Recipient: "", Amount0Out: math.ZeroInt(), Amount1Out: math.OneInt()},
			err:  onsen.ErrInvalidAccount,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.ValidateBasic()
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestOwnerMsgs_ValidateBasic(t *testing.T) {
	caller := creator.String()

	require.NoError(t, types.MsgSkim{Caller: caller, Recipient: caller}.ValidateBasic())
	require.ErrorIs(t, types.MsgSkim{Caller: caller}.ValidateBasic(), onsen.ErrInvalidAccount)

	require.NoError(t, types.MsgTransferOwnership{Caller: caller, NewOwner: asset0.String()}.ValidateBasic())
	require.ErrorIs(t, types.MsgTransferOwnership{Caller: "nope", NewOwner: caller}.ValidateBasic(), onsen.ErrInvalidAccount)

	require.NoError(t, types.MsgRenounceOwnership{Caller: caller}.ValidateBasic())
	require.ErrorIs(t, types.MsgRenounceOwnership{}.ValidateBasic(), onsen.ErrInvalidAccount)
}
