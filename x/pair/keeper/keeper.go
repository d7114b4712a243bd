package keeper

import (
	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"

	"github.com/onsenswap/onsenswap/x/pair/types"
)

// Keeper of the pair store
type Keeper struct {
	db          dbm.DB
	tokenKeeper types.TokenKeeper
	blockKeeper types.BlockKeeper
	logger      log.Logger
	hooks       types.PairHooks
	guard       *ReentrancyGuard
	metrics     *PairMetrics
}

// NewKeeper creates a new pair Keeper instance
func NewKeeper(
	db dbm.DB,
	tokenKeeper types.TokenKeeper,
	blockKeeper types.BlockKeeper,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		db:          dbm.NewPrefixDB(db, []byte(types.StoreKey)),
		tokenKeeper: tokenKeeper,
		blockKeeper: blockKeeper,
		logger:      logger,
		guard:       NewReentrancyGuard(),
		metrics:     NewPairMetrics(),
	}
}

// Logger returns a module-specific logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger.With("module", "x/"+types.ModuleName)
}

// SetHooks sets the pair hooks. It panics if hooks were already set.
func (k *Keeper) SetHooks(hooks types.PairHooks) *Keeper {
	if k.hooks != nil {
		panic("cannot set pair hooks twice")
	}
	k.hooks = hooks
	return k
}

// GetHooks returns the registered hooks, if any.
func (k *Keeper) GetHooks() types.PairHooks {
	return k.hooks
}
