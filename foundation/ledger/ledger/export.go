package ledger

import (
	"github.com/vitalchain/ledger/foundation/ledger/block"
)

// BlockInfo is the serializable form of a block for external persistence.
type BlockInfo struct {
	Index     uint64     `json:"index"`
	TimeStamp int64      `json:"timestamp"`
	Data      []block.Tx `json:"data"`
	PrevHash  string     `json:"prev_hash"`
	Hash      string     `json:"hash"`
	Nonce     uint64     `json:"nonce"`
	Signature string     `json:"signature"`
}

// Snapshot is the full exportable state of the ledger. An external store
// can persist it; this package provides no loader.
type Snapshot struct {
	Chain               []BlockInfo `json:"chain"`
	Difficulty          uint        `json:"difficulty"`
	PendingTransactions []block.Tx  `json:"pending_transactions"`
}

// Export yields a JSON serializable snapshot of the chain, difficulty and
// pending pool for backup and observability.
func (l *Ledger) Export() Snapshot {
	l.mu.RLock()
	chain := make([]BlockInfo, len(l.chain))
	for i, b := range l.chain {
		chain[i] = BlockInfo{
			Index:     b.Index,
			TimeStamp: b.TimeStamp,
			Data:      b.Data,
			PrevHash:  b.PrevHash,
			Hash:      b.Hash,
			Nonce:     b.Nonce,
			Signature: b.Signature,
		}
	}
	l.mu.RUnlock()

	return Snapshot{
		Chain:               chain,
		Difficulty:          l.difficulty,
		PendingTransactions: l.pool.Copy(),
	}
}
