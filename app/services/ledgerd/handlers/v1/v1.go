// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/vitalchain/ledger/app/services/ledgerd/handlers/v1/public"
	"github.com/vitalchain/ledger/foundation/events"
	"github.com/vitalchain/ledger/foundation/ledger/ledger"
	"github.com/vitalchain/ledger/foundation/ledger/worker"
	"github.com/vitalchain/ledger/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log    *zap.SugaredLogger
	Ledger *ledger.Ledger
	Worker *worker.Worker
	Evts   *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:    cfg.Log,
		Ledger: cfg.Ledger,
		Worker: cfg.Worker,
		Evts:   cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodPost, version, "/tx/add", pbl.SubmitTransaction)
	app.Handle(http.MethodGet, version, "/tx/pending/list", pbl.PendingTransactions)
	app.Handle(http.MethodGet, version, "/tx/history/:account", pbl.TransactionsByAccount)
	app.Handle(http.MethodPost, version, "/mine", pbl.Mine)
	app.Handle(http.MethodGet, version, "/balances/:account", pbl.Balance)
	app.Handle(http.MethodGet, version, "/chain/validate", pbl.Validate)
	app.Handle(http.MethodGet, version, "/chain/stats", pbl.Stats)
	app.Handle(http.MethodGet, version, "/chain/export", pbl.Export)
}
