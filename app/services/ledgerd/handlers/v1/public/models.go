package public

// newTx is what a client submits to queue a transaction. The signature is
// produced by the wallet; the ledger itself never verifies it, so the
// handler checks it against the from address before queueing.
type newTx struct {
	From      string `json:"from" validate:"required"`
	To        string `json:"to" validate:"required"`
	Amount    uint64 `json:"amount" validate:"required,gt=0"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
}

// status is the generic acknowledgement for accepted operations.
type status struct {
	Status  string `json:"status"`
	Pending int    `json:"pending,omitempty"`
}

// chainState reports the result of a full chain validation walk.
type chainState struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// balance is the net position of a single account.
type balance struct {
	Account string `json:"account"`
	Balance int64  `json:"balance"`
}
