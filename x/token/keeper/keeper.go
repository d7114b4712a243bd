package keeper

import (
	"sync"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"

	onsen "github.com/onsenswap/onsenswap/types"
	"github.com/onsenswap/onsenswap/x/token/types"
)

// Keeper of the token store
type Keeper struct {
	db     dbm.DB
	logger log.Logger

	mu        sync.RWMutex
	receivers map[onsen.AccountID]types.Receiver
}

// NewKeeper creates a new token Keeper instance
func NewKeeper(db dbm.DB, logger log.Logger) *Keeper {
	return &Keeper{
		db:        dbm.NewPrefixDB(db, []byte(types.StoreKey)),
		logger:    logger,
		receivers: make(map[onsen.AccountID]types.Receiver),
	}
}

// Logger returns a module-specific logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger.With("module", "x/"+types.ModuleName)
}

// RegisterReceiver installs the hook notified when holder is credited.
func (k *Keeper) RegisterReceiver(holder onsen.AccountID, r types.Receiver) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.receivers[holder] = r
}

// UnregisterReceiver removes holder's hook, if any.
func (k *Keeper) UnregisterReceiver(holder onsen.AccountID) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.receivers, holder)
}

func (k *Keeper) receiver(holder onsen.AccountID) types.Receiver {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.receivers[holder]
}
