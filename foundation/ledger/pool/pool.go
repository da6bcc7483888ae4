// Package pool maintains the queue of transactions waiting to be sealed
// into the next mined block.
package pool

import (
	"errors"
	"sync"

	"github.com/vitalchain/ledger/foundation/ledger/block"
)

// ErrFull is returned from Add when the pool is at capacity. The caller
// may retry after the next block is mined.
var ErrFull = errors.New("transaction pool is at capacity")

// Pool is a bounded FIFO queue of pending transactions. Submission order
// is preserved because it determines the order transactions appear inside
// the next block.
type Pool struct {
	mu  sync.RWMutex
	txs []block.Tx
	max int
}

// New constructs a pool that holds at most max pending transactions. A max
// of zero or less means the pool is unbounded.
func New(max int) *Pool {
	return &Pool{
		max: max,
	}
}

// Add appends a transaction to the queue and returns the new pending
// count. The transaction is rejected when the pool is at capacity.
func (p *Pool) Add(tx block.Tx) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.max > 0 && len(p.txs) >= p.max {
		return len(p.txs), ErrFull
	}

	p.txs = append(p.txs, tx)

	return len(p.txs), nil
}

// Count returns the current number of pending transactions.
func (p *Pool) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.txs)
}

// Copy returns a snapshot of the pending transactions in submission order.
func (p *Pool) Copy() []block.Tx {
	p.mu.RLock()
	defer p.mu.RUnlock()

	txs := make([]block.Tx, len(p.txs))
	copy(txs, p.txs)

	return txs
}

// Drop removes the first n transactions from the queue. It is used after a
// successful mine to release the snapshot that was sealed into the block
// while keeping any transactions submitted during the mine.
func (p *Pool) Drop(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n >= len(p.txs) {
		p.txs = nil
		return
	}

	p.txs = append([]block.Tx{}, p.txs[n:]...)
}

// Truncate clears all pending transactions.
func (p *Pool) Truncate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.txs = nil
}
