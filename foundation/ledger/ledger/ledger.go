// Package ledger implements the append-only, hash-linked chain of blocks
// and the business rules for growing and querying it.
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/vitalchain/ledger/foundation/ledger/block"
	"github.com/vitalchain/ledger/foundation/ledger/hashing"
	"github.com/vitalchain/ledger/foundation/ledger/pool"
)

// defaultMiningReward is credited to the beneficiary of a mined block when
// the configuration doesn't specify a reward.
const defaultMiningReward = 100

// EventHandler defines a function that is called when events occur during
// mining and validation.
type EventHandler func(v string, args ...any)

// Signer produces the opaque signature attached to mined blocks. The
// ledger never inspects or verifies signatures; verification belongs to an
// external collaborator.
type Signer interface {
	Sign(value any) (string, error)
}

// Config represents the configuration required to construct a ledger.
type Config struct {
	Difficulty   uint
	MiningReward uint64
	MaxPending   int
	Hasher       hashing.Hasher
	Signer       Signer
	EvHandler    EventHandler
}

// Ledger owns the ordered block sequence for a single node. One mine
// operation runs at a time; reads may run concurrently with each other and
// are excluded from the append window.
type Ledger struct {
	mu     sync.RWMutex
	chain  []block.Block
	mineMu sync.Mutex

	pool      *pool.Pool
	hasher    hashing.Hasher
	signer    Signer
	evHandler EventHandler

	difficulty   uint
	miningReward uint64
}

// New constructs a ledger with its genesis block synthesized in place.
func New(cfg Config) *Ledger {
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = hashing.SHA256{}
	}

	reward := cfg.MiningReward
	if reward == 0 {
		reward = defaultMiningReward
	}

	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	return &Ledger{
		chain:        []block.Block{block.Genesis(hasher)},
		pool:         pool.New(cfg.MaxPending),
		hasher:       hasher,
		signer:       cfg.Signer,
		evHandler:    ev,
		difficulty:   cfg.Difficulty,
		miningReward: reward,
	}
}

// SubmitTransaction validates a transaction and queues it for the next
// mined block. A ValidationError means the input must be corrected before
// resubmission; pool.ErrFull means the pool is at capacity.
func (l *Ledger) SubmitTransaction(tx block.Tx) error {
	if tx.From == "" {
		return block.NewValidationError("transaction from address is required")
	}
	if tx.To == "" {
		return block.NewValidationError("transaction to address is required")
	}
	if tx.Amount == 0 {
		return block.NewValidationError("transaction amount must be greater than zero")
	}

	if tx.Timestamp == 0 {
		tx.Timestamp = time.Now().UnixMilli()
	}

	count, err := l.pool.Add(tx)
	if err != nil {
		return err
	}

	l.evHandler("ledger: submit: tx queued: from[%s] to[%s] amount[%d]: pool[%d]", tx.From, tx.To, tx.Amount, count)

	return nil
}

// MinePendingBlock drains the pending pool into a candidate block, runs
// the proof of work search, validates the result and appends it. Either
// the block is fully appended and the sealed transactions released from
// the pool, or the chain and pool are left untouched. The context cancels
// the search before any state change.
func (l *Ledger) MinePendingBlock(ctx context.Context, beneficiary string) (block.Block, error) {
	if beneficiary == "" {
		return block.Block{}, block.NewValidationError("beneficiary address is required")
	}

	// One mine at a time. Readers are not blocked while the search runs.
	l.mineMu.Lock()
	defer l.mineMu.Unlock()

	pending := l.pool.Copy()
	if len(pending) == 0 {
		return block.Block{}, ErrNoTransactions
	}

	reward := block.Tx{
		To:        beneficiary,
		Amount:    l.miningReward,
		Timestamp: time.Now().UnixMilli(),
	}
	data := append(pending, reward)

	last := l.LatestBlock()

	// Block timestamps must strictly increase, even when two blocks are
	// mined inside the same millisecond.
	timestamp := time.Now().UnixMilli()
	if timestamp <= last.TimeStamp {
		timestamp = last.TimeStamp + 1
	}

	var sig string
	if l.signer != nil {
		var err error
		if sig, err = l.signer.Sign(data); err != nil {
			return block.Block{}, err
		}
	}

	candidate, err := block.New(l.hasher, last.Index+1, timestamp, data, last.Hash, sig)
	if err != nil {
		return block.Block{}, err
	}

	mined, err := block.Mine(ctx, candidate, l.difficulty, l.hasher, l.evHandler)
	if err != nil {
		return block.Block{}, err
	}

	if ctx.Err() != nil {
		return block.Block{}, ctx.Err()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.validateNextBlock(mined); err != nil {
		return block.Block{}, err
	}

	l.chain = append(l.chain, mined)
	l.pool.Drop(len(pending))

	l.evHandler("ledger: mine: blk[%d] appended: hash[%s]: txs[%d]", mined.Index, mined.Hash, len(mined.Data))

	return mined, nil
}

// validateNextBlock checks a mined candidate can be appended after the
// current latest block. The caller must hold the write lock.
func (l *Ledger) validateNextBlock(candidate block.Block) error {
	last := l.chain[len(l.chain)-1]

	if candidate.Index != last.Index+1 {
		return &ChainIntegrityError{Index: candidate.Index, Reason: "index is not the next in the chain"}
	}
	if candidate.PrevHash != last.Hash {
		return &ChainIntegrityError{Index: candidate.Index, Reason: "previous hash doesn't match the latest block"}
	}
	if candidate.Hash != candidate.CalculateHash(l.hasher) {
		return &ChainIntegrityError{Index: candidate.Index, Reason: "hash doesn't match the block contents"}
	}
	if !block.IsHashSolved(l.difficulty, candidate.Hash) {
		return &ChainIntegrityError{Index: candidate.Index, Reason: "hash doesn't satisfy the difficulty"}
	}
	if candidate.TimeStamp <= last.TimeStamp {
		return &ChainIntegrityError{Index: candidate.Index, Reason: "timestamp is not after the latest block"}
	}

	return nil
}

// Validate walks the whole chain and reports the first violated invariant.
// The genesis block is compared against a freshly synthesized genesis,
// which is safe because the genesis timestamp is a constant.
func (l *Ledger) Validate() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if genesis := block.Genesis(l.hasher); l.chain[0].Hash != genesis.Hash || !l.chain[0].IsValid(l.hasher, nil) {
		return &ChainIntegrityError{Index: 0, Reason: "genesis block doesn't match the expected genesis"}
	}

	for i := 1; i < len(l.chain); i++ {
		b := l.chain[i]
		previous := l.chain[i-1]

		if b.Index != previous.Index+1 {
			return &ChainIntegrityError{Index: b.Index, Reason: "index is not the next in the chain"}
		}
		if !b.IsValid(l.hasher, &previous) {
			return &ChainIntegrityError{Index: b.Index, Reason: "hash or linkage is invalid"}
		}
		if !block.IsHashSolved(l.difficulty, b.Hash) {
			return &ChainIntegrityError{Index: b.Index, Reason: "hash doesn't satisfy the difficulty"}
		}
	}

	return nil
}

// LatestBlock returns the most recently appended block.
func (l *Ledger) LatestBlock() block.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.chain[len(l.chain)-1]
}

// Height returns the number of blocks in the chain, genesis included.
func (l *Ledger) Height() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.chain)
}

// Blocks returns a copy of the whole chain.
func (l *Ledger) Blocks() []block.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	chain := make([]block.Block, len(l.chain))
	copy(chain, l.chain)

	return chain
}

// PendingTransactions returns a snapshot of the transactions waiting to be
// sealed into the next block.
func (l *Ledger) PendingTransactions() []block.Tx {
	return l.pool.Copy()
}

// PendingCount returns the number of transactions waiting in the pool.
func (l *Ledger) PendingCount() int {
	return l.pool.Count()
}

// Difficulty returns the number of leading zero hex characters required of
// a mined hash.
func (l *Ledger) Difficulty() uint {
	return l.difficulty
}

// MiningReward returns the amount credited to a block's beneficiary.
func (l *Ledger) MiningReward() uint64 {
	return l.miningReward
}
