package block

import (
	"context"

	"github.com/vitalchain/ledger/foundation/ledger/hashing"
)

// Mine performs the proof of work search for the specified candidate. The
// candidate is copied so a partially mined block is never observable by
// other readers; only the returned block carries the final nonce and hash.
// The search is unbounded and CPU bound, so the context must be honored by
// callers that need cancellation.
func Mine(ctx context.Context, candidate Block, difficulty uint, hasher hashing.Hasher, ev func(v string, args ...any)) (Block, error) {
	ev("block: mine: POW: started: blk[%d]", candidate.Index)
	defer ev("block: mine: POW: completed: blk[%d]", candidate.Index)

	candidate.Nonce = 0

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("block: mine: POW: attempts[%d]", attempts)
		}

		if ctx.Err() != nil {
			ev("block: mine: POW: CANCELLED")
			return Block{}, ctx.Err()
		}

		candidate.Hash = candidate.CalculateHash(hasher)
		if !IsHashSolved(difficulty, candidate.Hash) {
			candidate.Nonce++
			continue
		}

		ev("block: mine: POW: SOLVED: prevBlk[%s]: newBlk[%s]", candidate.PrevHash, candidate.Hash)
		ev("block: mine: POW: attempts[%d]", attempts)

		return candidate, nil
	}
}
