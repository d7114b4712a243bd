package keeper

import (
	"context"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	onsen "github.com/onsenswap/onsenswap/types"
	"github.com/onsenswap/onsenswap/x/pair/keeper"
	"github.com/onsenswap/onsenswap/x/pair/types"
	tokenkeeper "github.com/onsenswap/onsenswap/x/token/keeper"
)

// PairFixture bundles a pair keeper with the collaborators it trades against
type PairFixture struct {
	Ctx    context.Context
	DB     dbm.DB
	Keeper *keeper.Keeper
	Tokens *tokenkeeper.Keeper
	Mock   *MockTokenKeeper
	Blocks *MockBlockKeeper

	Minter onsen.AccountID
	Owner  onsen.AccountID
	Asset0 onsen.AccountID
	Asset1 onsen.AccountID
	Pool   onsen.AccountID
}

// PairKeeper creates a test keeper for the pair module with two fresh tokens.
// The pool is not constructed yet.
func PairKeeper(t require.TestingT) *PairFixture {
	db := dbm.NewMemDB()
	logger := log.NewNopLogger()
	ctx := context.Background()

	tokens := tokenkeeper.NewKeeper(db, logger)
	mock := NewMockTokenKeeper(tokens)
	blocks := NewMockBlockKeeper(1)

	minter := onsen.TestAccountID("minter")
	token0, err := tokens.CreateToken(ctx, minter, "TKA", 6)
	require.NoError(t, err)
	token1, err := tokens.CreateToken(ctx, minter, "TKB", 6)
	require.NoError(t, err)

	return &PairFixture{
		Ctx:    ctx,
		DB:     db,
		Keeper: keeper.NewKeeper(db, mock, blocks, logger),
		Tokens: tokens,
		Mock:   mock,
		Blocks: blocks,
		Minter: minter,
		Owner:  onsen.TestAccountID("owner"),
		Asset0: token0.ID,
		Asset1: token1.ID,
		Pool:   types.PoolAccountID(token0.ID, token1.ID),
	}
}

// PairKeeperWithPool creates a pair whose ledger was seeded with the given
// reserves, as after a liquidity event, and whose pool account holds exactly
// those reserves.
func PairKeeperWithPool(t require.TestingT, reserve0, reserve1 math.Int) *PairFixture {
	f := PairKeeper(t)

	ledger := types.NewLedger(f.Owner, f.Asset0, f.Asset1, f.Blocks.CurrentBlock(f.Ctx))
	require.NoError(t, ledger.SeedReserves(reserve0, reserve1))
	require.NoError(t, f.Keeper.InitGenesis(f.Ctx, types.GenesisState{Ledger: &ledger}))

	if reserve0.IsPositive() {
		f.Deposit(t, f.Asset0, reserve0)
	}
	if reserve1.IsPositive() {
		f.Deposit(t, f.Asset1, reserve1)
	}
	return f
}

// Deposit mints amount of asset straight into the pool account, as a trader
// paying in before a swap would.
func (f *PairFixture) Deposit(t require.TestingT, asset onsen.AccountID, amount math.Int) {
	require.NoError(t, f.Tokens.Mint(f.Ctx, asset, f.Minter, f.Pool, amount))
}

// Balance returns holder's balance of asset
func (f *PairFixture) Balance(t require.TestingT, asset, holder onsen.AccountID) math.Int {
	balance, err := f.Tokens.BalanceOf(f.Ctx, asset, holder)
	require.NoError(t, err)
	return balance
}

// Reserves returns the committed reserves
func (f *PairFixture) Reserves(t require.TestingT) (math.Int, math.Int, uint64) {
	r0, r1, block, err := f.Keeper.GetReserves(f.Ctx)
	require.NoError(t, err)
	return r0, r1, block
}
