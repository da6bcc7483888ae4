package pool_test

import (
	"errors"
	"testing"

	"github.com/vitalchain/ledger/foundation/ledger/block"
	"github.com/vitalchain/ledger/foundation/ledger/pool"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestFIFO(t *testing.T) {
	t.Log("Given the need to preserve submission order.")
	{
		p := pool.New(0)

		txs := []block.Tx{
			{From: "A", To: "B", Amount: 1},
			{From: "B", To: "C", Amount: 2},
			{From: "C", To: "A", Amount: 3},
		}
		for _, tx := range txs {
			if _, err := p.Add(tx); err != nil {
				t.Fatalf("\t%s\tShould be able to add a transaction: %v", failed, err)
			}
		}
		t.Logf("\t%s\tShould be able to add transactions.", success)

		snapshot := p.Copy()
		if len(snapshot) != len(txs) {
			t.Fatalf("\t%s\tShould snapshot all transactions, got %d.", failed, len(snapshot))
		}
		for i, tx := range snapshot {
			if tx != txs[i] {
				t.Fatalf("\t%s\tShould keep transactions in submission order.", failed)
			}
		}
		t.Logf("\t%s\tShould keep transactions in submission order.", success)
	}
}

func TestCapacity(t *testing.T) {
	t.Log("Given the need to bound the pending pool.")
	{
		p := pool.New(2)

		p.Add(block.Tx{From: "A", To: "B", Amount: 1})
		p.Add(block.Tx{From: "A", To: "B", Amount: 2})

		if _, err := p.Add(block.Tx{From: "A", To: "B", Amount: 3}); !errors.Is(err, pool.ErrFull) {
			t.Fatalf("\t%s\tShould reject a transaction when at capacity, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould reject a transaction when at capacity.", success)

		if p.Count() != 2 {
			t.Fatalf("\t%s\tShould leave the pool unchanged on rejection, got %d.", failed, p.Count())
		}
		t.Logf("\t%s\tShould leave the pool unchanged on rejection.", success)
	}
}

func TestDrop(t *testing.T) {
	t.Log("Given the need to release mined transactions and keep late arrivals.")
	{
		p := pool.New(0)

		p.Add(block.Tx{From: "A", To: "B", Amount: 1})
		p.Add(block.Tx{From: "B", To: "C", Amount: 2})
		p.Add(block.Tx{From: "C", To: "A", Amount: 3})

		p.Drop(2)

		if p.Count() != 1 {
			t.Fatalf("\t%s\tShould keep only transactions past the drop point, got %d.", failed, p.Count())
		}
		if p.Copy()[0].Amount != 3 {
			t.Fatalf("\t%s\tShould keep the most recent transaction.", failed)
		}
		t.Logf("\t%s\tShould keep only transactions past the drop point.", success)

		p.Drop(10)
		if p.Count() != 0 {
			t.Fatalf("\t%s\tShould empty the pool when dropping past the end, got %d.", failed, p.Count())
		}
		t.Logf("\t%s\tShould empty the pool when dropping past the end.", success)
	}
}

func TestTruncate(t *testing.T) {
	t.Log("Given the need to clear the pool.")
	{
		p := pool.New(0)

		p.Add(block.Tx{From: "A", To: "B", Amount: 1})
		p.Truncate()

		if p.Count() != 0 {
			t.Fatalf("\t%s\tShould be able to truncate the pool, got %d.", failed, p.Count())
		}
		t.Logf("\t%s\tShould be able to truncate the pool.", success)
	}
}
