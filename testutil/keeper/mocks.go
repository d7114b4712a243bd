package keeper

import (
	"context"
	"sync"

	"cosmossdk.io/math"

	onsen "github.com/onsenswap/onsenswap/types"
	pairtypes "github.com/onsenswap/onsenswap/x/pair/types"
)

// MockBlockKeeper is a manually advanced block clock
type MockBlockKeeper struct {
	mu     sync.Mutex
	height uint64
}

// NewMockBlockKeeper returns a clock at height
func NewMockBlockKeeper(height uint64) *MockBlockKeeper {
	return &MockBlockKeeper{height: height}
}

// CurrentBlock implements types.BlockKeeper
func (m *MockBlockKeeper) CurrentBlock(context.Context) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.height
}

// Advance moves the clock forward by n blocks
func (m *MockBlockKeeper) Advance(n uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.height += n
}

// TokenCall records one TransferFrom seen by MockTokenKeeper
type TokenCall struct {
	Token    onsen.AccountID
	From, To onsen.AccountID
	Value    math.Int
	Data     []byte
}

// MockTokenKeeper wraps a token keeper, records transfers and can inject
// failures per token.
type MockTokenKeeper struct {
	pairtypes.TokenKeeper

	mu           sync.Mutex
	Calls        []TokenCall
	transferErrs map[onsen.AccountID]error
	balanceErrs  map[onsen.AccountID]error
	balanceSkew  map[onsen.AccountID]math.Int
}

// NewMockTokenKeeper wraps inner
func NewMockTokenKeeper(inner pairtypes.TokenKeeper) *MockTokenKeeper {
	return &MockTokenKeeper{
		TokenKeeper:  inner,
		transferErrs: make(map[onsen.AccountID]error),
		balanceErrs:  make(map[onsen.AccountID]error),
		balanceSkew:  make(map[onsen.AccountID]math.Int),
	}
}

// FailTransfers makes every TransferFrom of token return err
func (m *MockTokenKeeper) FailTransfers(token onsen.AccountID, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transferErrs[token] = err
}

// FailBalances makes every BalanceOf of token return err
func (m *MockTokenKeeper) FailBalances(token onsen.AccountID, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balanceErrs[token] = err
}

// SkewBalance adds delta to every balance reported for token, emulating a
// collaborator that misreports holdings.
func (m *MockTokenKeeper) SkewBalance(token onsen.AccountID, delta math.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balanceSkew[token] = delta
}

// TransferFrom implements types.TokenKeeper
func (m *MockTokenKeeper) TransferFrom(ctx context.Context, token, from, to onsen.AccountID, value math.Int, data []byte) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, TokenCall{Token: token, From: from, To: to, Value: value, Data: data})
	err := m.transferErrs[token]
	m.mu.Unlock()

	if err != nil {
		return err
	}
	return m.TokenKeeper.TransferFrom(ctx, token, from, to, value, data)
}

// BalanceOf implements types.TokenKeeper
func (m *MockTokenKeeper) BalanceOf(ctx context.Context, token, owner onsen.AccountID) (math.Int, error) {
	m.mu.Lock()
	err := m.balanceErrs[token]
	skew, skewed := m.balanceSkew[token]
	m.mu.Unlock()

	if err != nil {
		return math.Int{}, err
	}
	balance, err := m.TokenKeeper.BalanceOf(ctx, token, owner)
	if err != nil || !skewed {
		return balance, err
	}
	return balance.Add(skew), nil
}

// TransferCount returns how many TransferFrom calls were made
func (m *MockTokenKeeper) TransferCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
