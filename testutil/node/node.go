package node

import (
	"context"
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	"github.com/onsenswap/onsenswap/app"
	onsen "github.com/onsenswap/onsenswap/types"
	pairtypes "github.com/onsenswap/onsenswap/x/pair/types"
	tokentypes "github.com/onsenswap/onsenswap/x/token/types"
)

// TraderFunds is what every fixture trader starts with of each asset.
const TraderFunds = 1_000_000

var (
	Minter = onsen.TestAccountID("minter")
	Owner  = onsen.TestAccountID("owner")
	Trader = onsen.TestAccountID("trader")
)

// Fixture is a node with a funded pool imported at genesis.
type Fixture struct {
	App *app.OnsenApp
	DB  dbm.DB
	Ctx context.Context

	Asset0 onsen.AccountID
	Asset1 onsen.AccountID
	Pool   onsen.AccountID
}

// SeededGenesis returns a genesis whose pool holds and tracks reserve0 and
// reserve1, owned by Owner, with Trader holding TraderFunds of both assets.
func SeededGenesis(t require.TestingT, reserve0, reserve1 int64) app.GenesisDoc {
	tokA := tokentypes.Token{ID: tokentypes.TokenID(Minter, "TKA"), Symbol: "TKA", Decimals: 6, Minter: Minter}
	tokB := tokentypes.Token{ID: tokentypes.TokenID(Minter, "TKB"), Symbol: "TKB", Decimals: 6, Minter: Minter}
	pool := pairtypes.PoolAccountID(tokA.ID, tokB.ID)

	tokA.TotalSupply = math.NewInt(reserve0 + TraderFunds)
	tokB.TotalSupply = math.NewInt(reserve1 + TraderFunds)

	var balances []tokentypes.Balance
	if reserve0 > 0 {
		balances = append(balances, tokentypes.Balance{Token: tokA.ID, Holder: pool, Amount: math.NewInt(reserve0)})
	}
	if reserve1 > 0 {
		balances = append(balances, tokentypes.Balance{Token: tokB.ID, Holder: pool, Amount: math.NewInt(reserve1)})
	}
	balances = append(balances,
		tokentypes.Balance{Token: tokA.ID, Holder: Trader, Amount: math.NewInt(TraderFunds)},
		tokentypes.Balance{Token: tokB.ID, Holder: Trader, Amount: math.NewInt(TraderFunds)},
	)

	ledger := pairtypes.NewLedger(Owner, tokA.ID, tokB.ID, 1)
	require.NoError(t, ledger.SeedReserves(math.NewInt(reserve0), math.NewInt(reserve1)))

	tokenJSON, err := json.Marshal(tokentypes.GenesisState{Tokens: []tokentypes.Token{tokA, tokB}, Balances: balances})
	require.NoError(t, err)
	pairJSON, err := json.Marshal(pairtypes.GenesisState{Ledger: &ledger})
	require.NoError(t, err)

	doc := app.NewGenesisDoc("onsen-test")
	doc.AppState = app.GenesisState{
		tokentypes.ModuleName: tokenJSON,
		pairtypes.ModuleName:  pairJSON,
	}
	return *doc
}

// Setup opens an in-memory node and imports SeededGenesis.
func Setup(t require.TestingT, reserve0, reserve1 int64) *Fixture {
	db := dbm.NewMemDB()
	node, err := app.NewOnsenApp(log.NewNopLogger(), db, 10)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, node.InitChain(ctx, SeededGenesis(t, reserve0, reserve1)))

	ledger, err := node.PairKeeper.GetLedger(ctx)
	require.NoError(t, err)

	return &Fixture{
		App:    node,
		DB:     db,
		Ctx:    ctx,
		Asset0: ledger.Asset0,
		Asset1: ledger.Asset1,
		Pool:   ledger.PoolAccount(),
	}
}
