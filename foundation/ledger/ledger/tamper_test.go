package ledger

import (
	"context"
	"testing"

	"github.com/vitalchain/ledger/foundation/ledger/block"
)

// These tests reach into the chain slice directly to simulate corruption a
// caller could never produce through the API.

func mineBlocks(t *testing.T, lgr *Ledger, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		if err := lgr.SubmitTransaction(block.Tx{From: "A", To: "B", Amount: 10}); err != nil {
			t.Fatalf("submitting transaction: %v", err)
		}
		if _, err := lgr.MinePendingBlock(context.Background(), "MINER"); err != nil {
			t.Fatalf("mining block: %v", err)
		}
	}
}

func TestTamperedData(t *testing.T) {
	lgr := New(Config{Difficulty: 1})
	mineBlocks(t, lgr, 2)

	if err := lgr.Validate(); err != nil {
		t.Fatalf("expected a valid chain before tampering: %v", err)
	}

	lgr.chain[1].Data[0].Amount = 9999

	if err := lgr.Validate(); err == nil {
		t.Fatal("expected validation to fail after tampering with block data")
	}
}

func TestTamperedLinkage(t *testing.T) {
	lgr := New(Config{Difficulty: 1})
	mineBlocks(t, lgr, 2)

	// Recompute the hash after editing so only the linkage is broken.
	lgr.chain[1].Nonce++
	lgr.chain[1].Hash = lgr.chain[1].CalculateHash(lgr.hasher)

	if err := lgr.Validate(); err == nil {
		t.Fatal("expected validation to fail after breaking the hash linkage")
	}
}

func TestTamperedGenesis(t *testing.T) {
	lgr := New(Config{Difficulty: 1})

	lgr.chain[0].Data[0].To = "attacker"
	lgr.chain[0].Hash = lgr.chain[0].CalculateHash(lgr.hasher)

	if err := lgr.Validate(); err == nil {
		t.Fatal("expected validation to fail after tampering with the genesis block")
	}
}

func TestRejectedCandidate(t *testing.T) {
	lgr := New(Config{Difficulty: 1})
	mineBlocks(t, lgr, 1)

	// A candidate that skips an index must be rejected defensively.
	bad := lgr.chain[1]
	bad.Index += 2

	if err := lgr.validateNextBlock(bad); !IsChainIntegrityError(err) {
		t.Fatalf("expected a chain integrity error, got %v", err)
	}
}
