package block

// Tx represents a transfer of value recorded inside a block. A Tx with an
// empty From is a reward issuance created by the ledger itself and only
// ever credits the recipient.
type Tx struct {
	From      string `json:"from,omitempty"`
	To        string `json:"to"`
	Amount    uint64 `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

// IsReward reports whether the transaction is a mining reward issuance.
func (tx Tx) IsReward() bool {
	return tx.From == ""
}
