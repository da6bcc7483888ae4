// Package public maintains the group of handlers for public access to the
// ledger.
package public

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vitalchain/ledger/business/web/errs"
	"github.com/vitalchain/ledger/foundation/events"
	"github.com/vitalchain/ledger/foundation/ledger/block"
	"github.com/vitalchain/ledger/foundation/ledger/ledger"
	"github.com/vitalchain/ledger/foundation/ledger/pool"
	"github.com/vitalchain/ledger/foundation/ledger/signature"
	"github.com/vitalchain/ledger/foundation/ledger/worker"
	"github.com/vitalchain/ledger/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of public ledger endpoints.
type Handlers struct {
	Log    *zap.SugaredLogger
	Ledger *ledger.Ledger
	Worker *worker.Worker
	WS     websocket.Upgrader
	Evts   *events.Events
}

// Events handles a web socket to provide mining events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitTransaction queues a new transaction for the next mined block.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var tx newTx
	if err := web.Decode(r, &tx); err != nil {
		if web.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("submit tran", "traceid", v.TraceID, "from", tx.From, "to", tx.To, "amount", tx.Amount)

	// The ledger treats signatures as opaque, so the signature check
	// happens here, before the transaction is ever handed to the core.
	if tx.Signature != "" {
		payload := block.Tx{From: tx.From, To: tx.To, Amount: tx.Amount, Timestamp: tx.Timestamp}
		from, err := signature.RecoverAddress(payload, tx.Signature)
		if err != nil {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		if from != tx.From {
			return errs.NewTrusted(errors.New("signature doesn't match the from address"), http.StatusBadRequest)
		}
	}

	err = h.Ledger.SubmitTransaction(block.Tx{
		From:      tx.From,
		To:        tx.To,
		Amount:    tx.Amount,
		Timestamp: tx.Timestamp,
	})
	switch {
	case ledger.IsValidationError(err):
		return errs.NewTrusted(err, http.StatusBadRequest)
	case errors.Is(err, pool.ErrFull):
		return errs.NewTrusted(err, http.StatusTooManyRequests)
	case err != nil:
		return err
	}

	resp := status{
		Status:  "transaction queued",
		Pending: h.Ledger.PendingCount(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// PendingTransactions returns the set of transactions waiting to be mined.
func (h Handlers) PendingTransactions(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Ledger.PendingTransactions(), http.StatusOK)
}

// Mine signals the mining worker to seal the pending transactions into a
// new block. The work itself runs on the worker's goroutine so this call
// doesn't block on the proof of work search.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if h.Ledger.PendingCount() == 0 {
		return errs.NewTrusted(ledger.ErrNoTransactions, http.StatusBadRequest)
	}

	h.Worker.SignalStartMining()

	resp := status{
		Status:  "mining signaled",
		Pending: h.Ledger.PendingCount(),
	}

	return web.Respond(ctx, w, resp, http.StatusAccepted)
}

// Validate walks the whole chain and reports whether every linkage and
// proof of work invariant holds.
func (h Handlers) Validate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := chainState{Valid: true}
	if err := h.Ledger.Validate(); err != nil {
		resp = chainState{Valid: false, Error: err.Error()}
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Balance returns the net balance for the specified account.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account := web.Param(r, "account")
	if account == "" {
		return errs.NewTrusted(errors.New("account is required"), http.StatusBadRequest)
	}

	resp := balance{
		Account: account,
		Balance: h.Ledger.BalanceOf(account),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// TransactionsByAccount returns every sealed transaction in which the
// account appears as sender or recipient.
func (h Handlers) TransactionsByAccount(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account := web.Param(r, "account")
	if account == "" {
		return errs.NewTrusted(errors.New("account is required"), http.StatusBadRequest)
	}

	txs := h.Ledger.TransactionsOf(account)
	if len(txs) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	return web.Respond(ctx, w, txs, http.StatusOK)
}

// Stats returns the current chain statistics.
func (h Handlers) Stats(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Ledger.Stats(), http.StatusOK)
}

// Export returns the full serializable snapshot of the chain for external
// persistence.
func (h Handlers) Export(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Ledger.Export(), http.StatusOK)
}
