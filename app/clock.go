package app

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	dbm "github.com/cosmos/cosmos-db"
)

var heightKey = []byte("height")

// BlockClock is the node's block counter. It satisfies the pair's
// BlockKeeper and moves forward once per committed operation.
type BlockClock struct {
	db dbm.DB

	mu     sync.RWMutex
	height uint64
}

// NewBlockClock loads the persisted height, starting at initialHeight on a
// fresh database.
func NewBlockClock(db dbm.DB, initialHeight uint64) (*BlockClock, error) {
	bz, err := db.Get(heightKey)
	if err != nil {
		return nil, err
	}

	c := &BlockClock{db: db, height: initialHeight}
	if bz != nil {
		if len(bz) != 8 {
			return nil, fmt.Errorf("corrupt block height %X", bz)
		}
		c.height = binary.BigEndian.Uint64(bz)
	}
	return c, nil
}

// CurrentBlock implements the pair's BlockKeeper.
func (c *BlockClock) CurrentBlock(context.Context) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.height
}

// Height is CurrentBlock without a context.
func (c *BlockClock) Height() uint64 {
	return c.CurrentBlock(context.Background())
}

// Advance ends the current block.
func (c *BlockClock) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set(c.height + 1)
}

// SetHeight moves the clock to height, used when importing genesis.
func (c *BlockClock) SetHeight(height uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set(height)
}

func (c *BlockClock) set(height uint64) error {
	var bz [8]byte
	binary.BigEndian.PutUint64(bz[:], height)
	if err := c.db.SetSync(heightKey, bz[:]); err != nil {
		return err
	}
	c.height = height
	return nil
}
