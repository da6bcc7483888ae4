package block_test

import (
	"context"
	"testing"
	"time"

	"github.com/vitalchain/ledger/foundation/ledger/block"
	"github.com/vitalchain/ledger/foundation/ledger/hashing"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

var noEv = func(v string, args ...any) {}

// zeroHasher is a test double that always reports a solved hash. It lets
// the tests prove the digest strategy is injectable.
type zeroHasher struct {
	calls int
}

func (z *zeroHasher) Hash(data []byte) string {
	z.calls++
	return "0000000000000000000000000000000000000000000000000000000000000000"
}

func testTxs() []block.Tx {
	return []block.Tx{
		{From: "A", To: "B", Amount: 10, Timestamp: time.Now().UnixMilli()},
	}
}

func TestConstruction(t *testing.T) {
	hasher := hashing.SHA256{}
	now := time.Now().UnixMilli()

	t.Log("Given the need to validate block construction.")
	{
		t.Logf("\tTest 0:\tWhen constructing a block with valid fields.")
		{
			b, err := block.New(hasher, 1, now, testTxs(), "abc", "")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct a block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to construct a block.", success)

			if b.Nonce != 0 {
				t.Errorf("\t%s\tTest 0:\tShould start with a zero nonce, got %d.", failed, b.Nonce)
			} else {
				t.Logf("\t%s\tTest 0:\tShould start with a zero nonce.", success)
			}

			if b.Hash != b.CalculateHash(hasher) {
				t.Errorf("\t%s\tTest 0:\tShould have the pre-mining hash computed.", failed)
			} else {
				t.Logf("\t%s\tTest 0:\tShould have the pre-mining hash computed.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen constructing a block with bad fields.")
		{
			if _, err := block.New(hasher, 1, 0, testTxs(), "abc", ""); !block.IsValidationError(err) {
				t.Errorf("\t%s\tTest 1:\tShould reject a non positive timestamp, got %v.", failed, err)
			} else {
				t.Logf("\t%s\tTest 1:\tShould reject a non positive timestamp.", success)
			}

			future := time.Now().Add(10 * time.Minute).UnixMilli()
			if _, err := block.New(hasher, 1, future, testTxs(), "abc", ""); !block.IsValidationError(err) {
				t.Errorf("\t%s\tTest 1:\tShould reject a timestamp beyond the clock tolerance, got %v.", failed, err)
			} else {
				t.Logf("\t%s\tTest 1:\tShould reject a timestamp beyond the clock tolerance.", success)
			}

			if _, err := block.New(hasher, 1, now, nil, "abc", ""); !block.IsValidationError(err) {
				t.Errorf("\t%s\tTest 1:\tShould reject empty block data, got %v.", failed, err)
			} else {
				t.Logf("\t%s\tTest 1:\tShould reject empty block data.", success)
			}
		}
	}
}

func TestHashDelimiter(t *testing.T) {
	hasher := hashing.SHA256{}
	now := time.Now().UnixMilli()

	t.Log("Given the need to verify field delimiting in the canonical encoding.")
	{
		// Without a delimiter these two field tuples concatenate to the
		// same bytes: "1"+"23" equals "12"+"3".
		b1, err := block.New(hasher, 1, now, testTxs(), "23", "")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the first block: %v", failed, err)
		}
		b2, err := block.New(hasher, 12, now, testTxs(), "3", "")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the second block: %v", failed, err)
		}

		if b1.Hash == b2.Hash {
			t.Fatalf("\t%s\tShould produce distinct hashes for distinct field tuples.", failed)
		}
		t.Logf("\t%s\tShould produce distinct hashes for distinct field tuples.", success)
	}
}

func TestMine(t *testing.T) {
	hasher := hashing.SHA256{}
	const difficulty = 2

	t.Log("Given the need to mine a block to the required difficulty.")
	{
		candidate, err := block.New(hasher, 1, time.Now().UnixMilli(), testTxs(), "abc", "")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a candidate: %v", failed, err)
		}

		mined, err := block.Mine(context.Background(), candidate, difficulty, hasher, noEv)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine the candidate: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to mine the candidate.", success)

		if mined.Hash[:difficulty] != "00" {
			t.Errorf("\t%s\tShould have %d leading zeros, got hash %s.", failed, difficulty, mined.Hash)
		} else {
			t.Logf("\t%s\tShould have %d leading zeros.", success, difficulty)
		}

		if !block.IsHashSolved(difficulty, mined.Hash) {
			t.Errorf("\t%s\tShould satisfy the solved check.", failed)
		} else {
			t.Logf("\t%s\tShould satisfy the solved check.", success)
		}

		if !mined.IsValid(hasher, nil) {
			t.Errorf("\t%s\tShould produce a self consistent mined block.", failed)
		} else {
			t.Logf("\t%s\tShould produce a self consistent mined block.", success)
		}

		// The search works on a copy; the candidate must be untouched.
		if candidate.Nonce != 0 || candidate.Hash != candidate.CalculateHash(hasher) {
			t.Errorf("\t%s\tShould leave the candidate unmodified.", failed)
		} else {
			t.Logf("\t%s\tShould leave the candidate unmodified.", success)
		}
	}
}

func TestMineCancel(t *testing.T) {
	hasher := hashing.SHA256{}

	t.Log("Given the need to cancel an unbounded mining search.")
	{
		candidate, err := block.New(hasher, 1, time.Now().UnixMilli(), testTxs(), "abc", "")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a candidate: %v", failed, err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := block.Mine(ctx, candidate, 16, hasher, noEv); err == nil {
			t.Fatalf("\t%s\tShould return the context error when cancelled.", failed)
		}
		t.Logf("\t%s\tShould return the context error when cancelled.", success)
	}
}

func TestHasherInjection(t *testing.T) {
	t.Log("Given the need to swap the digest strategy for a deterministic double.")
	{
		hasher := &zeroHasher{}

		candidate, err := block.New(hasher, 1, time.Now().UnixMilli(), testTxs(), "abc", "")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a candidate: %v", failed, err)
		}

		mined, err := block.Mine(context.Background(), candidate, 8, hasher, noEv)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine with the double: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to mine with the double.", success)

		if mined.Nonce != 0 {
			t.Errorf("\t%s\tShould solve on the first nonce with an always solved digest, got %d.", failed, mined.Nonce)
		} else {
			t.Logf("\t%s\tShould solve on the first nonce with an always solved digest.", success)
		}

		if hasher.calls == 0 {
			t.Errorf("\t%s\tShould have routed hashing through the injected strategy.", failed)
		} else {
			t.Logf("\t%s\tShould have routed hashing through the injected strategy.", success)
		}
	}
}

func TestGenesis(t *testing.T) {
	hasher := hashing.SHA256{}

	t.Log("Given the need for a deterministic genesis block.")
	{
		g1 := block.Genesis(hasher)
		g2 := block.Genesis(hasher)

		if g1.Hash != g2.Hash {
			t.Fatalf("\t%s\tShould synthesize the same genesis every time.", failed)
		}
		t.Logf("\t%s\tShould synthesize the same genesis every time.", success)

		if g1.Index != 0 || g1.PrevHash != block.GenesisParentHash {
			t.Errorf("\t%s\tShould root the chain at index 0 with parent hash %q.", failed, block.GenesisParentHash)
		} else {
			t.Logf("\t%s\tShould root the chain at index 0 with parent hash %q.", success, block.GenesisParentHash)
		}

		if !g1.IsValid(hasher, nil) {
			t.Errorf("\t%s\tShould be self consistent.", failed)
		} else {
			t.Logf("\t%s\tShould be self consistent.", success)
		}
	}
}

func TestLinkage(t *testing.T) {
	hasher := hashing.SHA256{}

	t.Log("Given the need to validate block linkage.")
	{
		parent, err := block.New(hasher, 1, time.Now().UnixMilli(), testTxs(), "abc", "")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the parent: %v", failed, err)
		}

		child, err := block.New(hasher, 2, parent.TimeStamp+1, testTxs(), parent.Hash, "")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the child: %v", failed, err)
		}

		if !child.IsValid(hasher, &parent) {
			t.Errorf("\t%s\tShould accept a correctly linked child.", failed)
		} else {
			t.Logf("\t%s\tShould accept a correctly linked child.", success)
		}

		broken := child
		broken.PrevHash = "tampered"
		broken.Hash = broken.CalculateHash(hasher)
		if broken.IsValid(hasher, &parent) {
			t.Errorf("\t%s\tShould reject a child with the wrong parent hash.", failed)
		} else {
			t.Logf("\t%s\tShould reject a child with the wrong parent hash.", success)
		}

		stale := child
		stale.TimeStamp = parent.TimeStamp
		stale.Hash = stale.CalculateHash(hasher)
		if stale.IsValid(hasher, &parent) {
			t.Errorf("\t%s\tShould reject a child that doesn't advance the clock.", failed)
		} else {
			t.Logf("\t%s\tShould reject a child that doesn't advance the clock.", success)
		}
	}
}
