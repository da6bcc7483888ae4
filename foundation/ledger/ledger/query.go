package ledger

import (
	"github.com/vitalchain/ledger/foundation/ledger/block"
)

// AddressTx is a transaction annotated with the block that sealed it.
type AddressTx struct {
	block.Tx
	BlockIndex uint64 `json:"block_index"`
	BlockHash  string `json:"block_hash"`
}

// BalanceOf scans every block's transactions and returns the net balance
// for the address: debits where it is the sender, credits where it is the
// recipient. Reward issuances only ever credit. The balance can go
// negative since the ledger doesn't enforce funding.
func (l *Ledger) BalanceOf(address string) int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var balance int64
	for _, b := range l.chain {
		for _, tx := range b.Data {
			if tx.From == address {
				balance -= int64(tx.Amount)
			}
			if tx.To == address {
				balance += int64(tx.Amount)
			}
		}
	}

	return balance
}

// TransactionsOf collects every sealed transaction in which the address
// appears as sender or recipient.
func (l *Ledger) TransactionsOf(address string) []AddressTx {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var txs []AddressTx
	for _, b := range l.chain {
		for _, tx := range b.Data {
			if tx.From != address && tx.To != address {
				continue
			}

			txs = append(txs, AddressTx{
				Tx:         tx,
				BlockIndex: b.Index,
				BlockHash:  b.Hash,
			})
		}
	}

	return txs
}

// Stats is a read only projection of the chain state for observability.
type Stats struct {
	Height            int    `json:"height"`
	LatestHash        string `json:"latest_hash"`
	Difficulty        uint   `json:"difficulty"`
	MiningReward      uint64 `json:"mining_reward"`
	Pending           int    `json:"pending"`
	TotalTransactions int    `json:"total_transactions"`
}

// Stats returns current chain statistics. No mutation, no validation side
// effects.
func (l *Ledger) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var total int
	for _, b := range l.chain {
		total += len(b.Data)
	}

	return Stats{
		Height:            len(l.chain),
		LatestHash:        l.chain[len(l.chain)-1].Hash,
		Difficulty:        l.difficulty,
		MiningReward:      l.miningReward,
		Pending:           l.pool.Count(),
		TotalTransactions: total,
	}
}
