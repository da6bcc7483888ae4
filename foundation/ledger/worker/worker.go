// Package worker runs the mining workflow on a dedicated goroutine so the
// CPU bound proof of work search never blocks request handling and can be
// cancelled.
package worker

import (
	"sync"

	"github.com/vitalchain/ledger/foundation/ledger/ledger"
)

// Worker manages the mining workflow for a single ledger.
type Worker struct {
	ledger       *ledger.Ledger
	beneficiary  string
	wg           sync.WaitGroup
	shut         chan struct{}
	startMining  chan bool
	cancelMining chan bool
	evHandler    ledger.EventHandler
}

// Run creates a worker for the specified ledger and starts the mining
// goroutine. Mined rewards are credited to the beneficiary address.
func Run(lgr *ledger.Ledger, beneficiary string, evHandler ledger.EventHandler) *Worker {
	w := Worker{
		ledger:       lgr,
		beneficiary:  beneficiary,
		shut:         make(chan struct{}),
		startMining:  make(chan bool, 1),
		cancelMining: make(chan bool, 1),
		evHandler:    evHandler,
	}

	// We don't want to return until we know the G is up and running.
	hasStarted := make(chan bool)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		hasStarted <- true
		w.miningOperations()
	}()

	<-hasStarted

	return &w
}

// Shutdown terminates the goroutine performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.SignalCancelMining()

	close(w.shut)
	w.wg.Wait()
}

// SignalStartMining starts a mining operation. If there is already a
// signal pending in the channel, just return since a mining operation
// will start.
func (w *Worker) SignalStartMining() {
	select {
	case w.startMining <- true:
	default:
	}
	w.evHandler("worker: SignalStartMining: mining signaled")
}

// SignalCancelMining signals the goroutine executing the mining operation
// to stop immediately.
func (w *Worker) SignalCancelMining() {
	select {
	case w.cancelMining <- true:
	default:
	}
	w.evHandler("worker: SignalCancelMining: MINING: CANCEL: signaled")
}

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
