package app

import (
	"context"
	"fmt"
	"os"
	"sync"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"

	"github.com/onsenswap/onsenswap/app/telemetry"
	pairkeeper "github.com/onsenswap/onsenswap/x/pair/keeper"
	pairtypes "github.com/onsenswap/onsenswap/x/pair/types"
	tokenkeeper "github.com/onsenswap/onsenswap/x/token/keeper"
)

const (
	// Name is the daemon name
	Name = "onsenswapd"

	// DefaultChainID names a node that was initialised without --chain-id
	DefaultChainID = "onsen-local"

	appStoreKey = "app/"
)

var initializedKey = []byte("initialized")

// OnsenApp wires the token ledger, the pair and the block clock over one
// database. State transitions run one at a time through Execute.
type OnsenApp struct {
	logger log.Logger
	db     dbm.DB
	appDB  dbm.DB

	// mu serialises Execute; Query takes it for reading
	mu sync.RWMutex

	Clock       *BlockClock
	TokenKeeper *tokenkeeper.Keeper
	PairKeeper  *pairkeeper.Keeper
	Journal     *SwapJournal

	pairMsgServer   pairtypes.MsgServer
	pairQueryServer pairtypes.QueryServer
}

// OpenDB opens the node database under the configured home.
func OpenDB(cfg Config) (dbm.DB, error) {
	if cfg.DBBackend == string(dbm.MemDBBackend) {
		return dbm.NewMemDB(), nil
	}
	if err := os.MkdirAll(cfg.DataDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := dbm.NewDB("application", dbm.BackendType(cfg.DBBackend), cfg.DataDir())
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBBackend, err)
	}
	return db, nil
}

// NewOnsenApp returns a reference to an initialized OnsenApp.
func NewOnsenApp(logger log.Logger, db dbm.DB, journalSize int) (*OnsenApp, error) {
	app := &OnsenApp{
		logger: logger,
		db:     db,
		appDB:  dbm.NewPrefixDB(db, []byte(appStoreKey)),
	}

	clock, err := NewBlockClock(app.appDB, 1)
	if err != nil {
		return nil, fmt.Errorf("load block clock: %w", err)
	}
	app.Clock = clock

	app.TokenKeeper = tokenkeeper.NewKeeper(db, logger)
	app.PairKeeper = pairkeeper.NewKeeper(db, app.TokenKeeper, clock, logger)

	app.Journal = NewSwapJournal(logger.With("module", "journal"), journalSize)
	app.PairKeeper.SetHooks(pairtypes.NewMultiPairHooks(app.Journal))

	app.pairMsgServer = pairkeeper.NewMsgServerImpl(app.PairKeeper)
	app.pairQueryServer = pairkeeper.NewQueryServerImpl(app.PairKeeper)

	// a crash mid-operation can leave reentrancy markers behind
	cleared, err := app.PairKeeper.ClearStaleLocks(context.Background())
	if err != nil {
		return nil, fmt.Errorf("clear stale locks: %w", err)
	}
	if len(cleared) > 0 {
		logger.Info("cleared stale reentrancy locks", "operations", cleared)
	}

	return app, nil
}

// Logger returns the app logger.
func (app *OnsenApp) Logger() log.Logger {
	return app.logger
}

// PairMsgServer returns the pair's message handler.
func (app *OnsenApp) PairMsgServer() pairtypes.MsgServer {
	return app.pairMsgServer
}

// PairQueryServer returns the pair's query handler.
func (app *OnsenApp) PairQueryServer() pairtypes.QueryServer {
	return app.pairQueryServer
}

// Execute runs one state transition in the current block. A successful
// operation ends the block; a failed one leaves the clock where it was.
func (app *OnsenApp) Execute(ctx context.Context, op string, fn func(ctx context.Context) error) (err error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	height := app.Clock.Height()
	ctx, span := telemetry.StartOperation(ctx, op, height)
	defer func() { telemetry.EndOperation(span, err) }()

	if err = fn(ctx); err != nil {
		app.logger.Debug("operation failed", "op", op, "height", height, "error", err)
		return err
	}
	if err = app.Clock.Advance(); err != nil {
		return fmt.Errorf("advance block after %s: %w", op, err)
	}

	app.logger.Debug("operation committed", "op", op, "height", height)
	return nil
}

// Query runs a read-only function against a consistent view.
func (app *OnsenApp) Query(ctx context.Context, fn func(ctx context.Context) error) error {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return fn(ctx)
}

// CheckInvariants runs every pair invariant.
func (app *OnsenApp) CheckInvariants(ctx context.Context) (string, bool) {
	var (
		msg    string
		broken bool
	)
	_ = app.Query(ctx, func(ctx context.Context) error {
		msg, broken = pairkeeper.AllInvariants(app.PairKeeper)(ctx)
		return nil
	})
	return msg, broken
}

// Initialized reports whether genesis was imported.
func (app *OnsenApp) Initialized() (bool, error) {
	return app.appDB.Has(initializedKey)
}

// Close flushes and closes the database.
func (app *OnsenApp) Close() error {
	return app.db.Close()
}
