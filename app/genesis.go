package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cosmossdk.io/math"

	onsen "github.com/onsenswap/onsenswap/types"
	pairtypes "github.com/onsenswap/onsenswap/x/pair/types"
	tokentypes "github.com/onsenswap/onsenswap/x/token/types"
)

// GenesisState represents the genesis state of the node.
// It is a map from module name to module genesis state.
type GenesisState map[string]json.RawMessage

// GenesisDoc is the genesis file of a node.
type GenesisDoc struct {
	ChainID       string       `json:"chain_id"`
	GenesisTime   time.Time    `json:"genesis_time"`
	InitialHeight uint64       `json:"initial_height"`
	AppState      GenesisState `json:"app_state"`
}

// NewDefaultGenesisState generates the default state for the application.
func NewDefaultGenesisState() GenesisState {
	return GenesisState{
		tokentypes.ModuleName: mustMarshalJSON(tokentypes.DefaultGenesis()),
		pairtypes.ModuleName:  mustMarshalJSON(pairtypes.DefaultGenesis()),
	}
}

// NewGenesisDoc returns a default genesis document for chainID.
func NewGenesisDoc(chainID string) *GenesisDoc {
	return &GenesisDoc{
		ChainID:       chainID,
		GenesisTime:   time.Now().UTC(),
		InitialHeight: 1,
		AppState:      NewDefaultGenesisState(),
	}
}

// ModuleStates decodes both module sections. Missing sections decode to defaults.
func (gs GenesisState) ModuleStates() (*tokentypes.GenesisState, *pairtypes.GenesisState, error) {
	tokenGenesis := tokentypes.DefaultGenesis()
	if raw, ok := gs[tokentypes.ModuleName]; ok {
		if err := json.Unmarshal(raw, tokenGenesis); err != nil {
			return nil, nil, fmt.Errorf("decode %s genesis: %w", tokentypes.ModuleName, err)
		}
	}

	pairGenesis := pairtypes.DefaultGenesis()
	if raw, ok := gs[pairtypes.ModuleName]; ok {
		if err := json.Unmarshal(raw, pairGenesis); err != nil {
			return nil, nil, fmt.Errorf("decode %s genesis: %w", pairtypes.ModuleName, err)
		}
	}
	return tokenGenesis, pairGenesis, nil
}

// Validate checks each module section and that seeded reserves are backed by
// the pool's token balances.
func (gs GenesisState) Validate() error {
	tokenGenesis, pairGenesis, err := gs.ModuleStates()
	if err != nil {
		return err
	}
	if err := tokenGenesis.Validate(); err != nil {
		return fmt.Errorf("%s: %w", tokentypes.ModuleName, err)
	}
	if err := pairGenesis.Validate(); err != nil {
		return fmt.Errorf("%s: %w", pairtypes.ModuleName, err)
	}

	ledger := pairGenesis.Ledger
	if ledger == nil {
		return nil
	}

	known := make(map[onsen.AccountID]bool, len(tokenGenesis.Tokens))
	for _, token := range tokenGenesis.Tokens {
		known[token.ID] = true
	}
	for _, asset := range []onsen.AccountID{ledger.Asset0, ledger.Asset1} {
		if !known[asset] {
			return tokentypes.ErrTokenNotFound.Wrapf("pair asset %s is not in token genesis", asset)
		}
	}

	held := map[onsen.AccountID]math.Int{
		ledger.Asset0: math.ZeroInt(),
		ledger.Asset1: math.ZeroInt(),
	}
	pool := ledger.PoolAccount()
	for _, bal := range tokenGenesis.Balances {
		if _, ok := held[bal.Token]; ok && bal.Holder == pool {
			held[bal.Token] = bal.Amount
		}
	}
	if held[ledger.Asset0].LT(ledger.Reserve0) || held[ledger.Asset1].LT(ledger.Reserve1) {
		return pairtypes.ErrInvalidLedger.Wrapf("reserves %s/%s not backed by pool balances %s/%s",
			ledger.Reserve0, ledger.Reserve1, held[ledger.Asset0], held[ledger.Asset1])
	}
	return nil
}

// Validate performs basic validation of the genesis document. A seeded ledger
// may not be stamped with a block later than the initial height.
func (doc GenesisDoc) Validate() error {
	if doc.ChainID == "" {
		return errors.New("genesis doc must include non-empty chain_id")
	}
	if doc.InitialHeight == 0 {
		return errors.New("initial_height must be positive")
	}
	if err := doc.AppState.Validate(); err != nil {
		return err
	}

	// the first committed operation stamps the ledger with the clock height
	_, pairGenesis, err := doc.AppState.ModuleStates()
	if err != nil {
		return err
	}
	if ledger := pairGenesis.Ledger; ledger != nil && ledger.LastUpdateBlock > doc.InitialHeight {
		return pairtypes.ErrInvalidLedger.Wrapf("last_update_block %d is after initial_height %d",
			ledger.LastUpdateBlock, doc.InitialHeight)
	}
	return nil
}

// SaveAs writes the document as indented JSON, creating parent directories.
func (doc GenesisDoc) SaveAs(path string) error {
	bz, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, bz, 0o644)
}

// GenesisDocFromFile reads a genesis document.
func GenesisDocFromFile(path string) (*GenesisDoc, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read genesis file: %w", err)
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, fmt.Errorf("decode genesis file %s: %w", path, err)
	}
	return &doc, nil
}

// InitChain imports a genesis document into an empty node.
func (app *OnsenApp) InitChain(ctx context.Context, doc GenesisDoc) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("invalid genesis: %w", err)
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	initialized, err := app.Initialized()
	if err != nil {
		return err
	}
	if initialized {
		return errors.New("genesis already imported")
	}

	tokenGenesis, pairGenesis, err := doc.AppState.ModuleStates()
	if err != nil {
		return err
	}
	if err := app.TokenKeeper.InitGenesis(ctx, *tokenGenesis); err != nil {
		return err
	}
	if err := app.PairKeeper.InitGenesis(ctx, *pairGenesis); err != nil {
		return err
	}
	if err := app.Clock.SetHeight(doc.InitialHeight); err != nil {
		return err
	}
	if err := app.appDB.SetSync(initializedKey, []byte(doc.ChainID)); err != nil {
		return err
	}

	app.logger.Info("genesis imported", "chain_id", doc.ChainID, "height", doc.InitialHeight)
	return nil
}

// ChainID returns the chain id recorded at genesis.
func (app *OnsenApp) ChainID() (string, error) {
	bz, err := app.appDB.Get(initializedKey)
	if err != nil {
		return "", err
	}
	return string(bz), nil
}

// ExportGenesis exports the current state as a genesis document that starts
// at the current height.
func (app *OnsenApp) ExportGenesis(ctx context.Context) (*GenesisDoc, error) {
	app.mu.RLock()
	defer app.mu.RUnlock()

	chainID, err := app.ChainID()
	if err != nil {
		return nil, err
	}
	if chainID == "" {
		chainID = DefaultChainID
	}

	tokenGenesis, err := app.TokenKeeper.ExportGenesis(ctx)
	if err != nil {
		return nil, err
	}
	pairGenesis, err := app.PairKeeper.ExportGenesis(ctx)
	if err != nil {
		return nil, err
	}

	return &GenesisDoc{
		ChainID:       chainID,
		GenesisTime:   time.Now().UTC(),
		InitialHeight: app.Clock.Height(),
		AppState: GenesisState{
			tokentypes.ModuleName: mustMarshalJSON(tokenGenesis),
			pairtypes.ModuleName:  mustMarshalJSON(pairGenesis),
		},
	}, nil
}

func mustMarshalJSON(v interface{}) json.RawMessage {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bz
}
