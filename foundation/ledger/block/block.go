// Package block implements the individual record of the chain: an
// immutable-once-mined batch of transactions plus its linkage and proof
// of work metadata.
package block

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vitalchain/ledger/foundation/ledger/hashing"
)

const (
	// GenesisParentHash is the parent hash recorded on the genesis block,
	// which has no real predecessor.
	GenesisParentHash = "0"

	// genesisTimeStamp pins the genesis block to a fixed moment so any two
	// ledgers constructed independently produce the same genesis hash and
	// chain validation never depends on wall clock skew.
	genesisTimeStamp int64 = 1577836800000 // 2020-01-01T00:00:00Z

	// clockSkewTolerance bounds how far into the future a block timestamp
	// may sit at construction time.
	clockSkewTolerance = 2 * time.Minute
)

// Block represents a group of transactions sealed together. Once mined, a
// block is read only; the nonce and hash are never mutated again.
type Block struct {
	Index     uint64 `json:"index"`
	TimeStamp int64  `json:"timestamp"`
	Data      []Tx   `json:"data"`
	PrevHash  string `json:"prev_hash"`
	Signature string `json:"signature"`
	Nonce     uint64 `json:"nonce"`
	Hash      string `json:"hash"`
}

// New constructs an unmined block and computes its pre-mining hash with a
// nonce of zero. The signature is opaque to this package; an external
// signing collaborator produces it and the empty string is a valid value.
func New(hasher hashing.Hasher, index uint64, timestamp int64, data []Tx, prevHash string, signature string) (Block, error) {
	if timestamp <= 0 {
		return Block{}, NewValidationError("block timestamp must be positive, got %d", timestamp)
	}

	if max := time.Now().Add(clockSkewTolerance).UnixMilli(); timestamp > max {
		return Block{}, NewValidationError("block timestamp %d is beyond the clock skew tolerance %d", timestamp, max)
	}

	if len(data) == 0 {
		return Block{}, NewValidationError("block data must not be empty")
	}

	b := Block{
		Index:     index,
		TimeStamp: timestamp,
		Data:      data,
		PrevHash:  prevHash,
		Signature: signature,
	}
	b.Hash = b.CalculateHash(hasher)

	return b, nil
}

// Genesis constructs the fixed index zero block that roots every chain. Its
// timestamp is a constant so the block is fully deterministic.
func Genesis(hasher hashing.Hasher) Block {
	b := Block{
		Index:     0,
		TimeStamp: genesisTimeStamp,
		Data:      []Tx{{To: "genesis", Timestamp: genesisTimeStamp}},
		PrevHash:  GenesisParentHash,
	}
	b.Hash = b.CalculateHash(hasher)

	return b
}

// CalculateHash derives the digest over the block's current field values.
// It is a pure function: any verifier holding the same field values derives
// the same digest.
func (b Block) CalculateHash(hasher hashing.Hasher) string {

	// Transactions can't fail to marshal, they are plain values.
	data, err := json.Marshal(b.Data)
	if err != nil {
		data = []byte("[]")
	}

	// Every field is delimited. Concatenating fields raw would let distinct
	// tuples collide, such as index 1 with parent "23" against index 12
	// with parent "3".
	payload := fmt.Sprintf("%d|%d|%s|%s|%s|%d", b.Index, b.TimeStamp, b.PrevHash, data, b.Signature, b.Nonce)

	return hasher.Hash([]byte(payload))
}

// IsValid reports whether the block's hash matches its field values and,
// when a previous block is provided, whether the linkage to it holds. The
// proof of work difficulty is a chain level concern and is not checked here.
func (b Block) IsValid(hasher hashing.Hasher, previous *Block) bool {
	if b.Hash != b.CalculateHash(hasher) {
		return false
	}

	if previous != nil {
		if b.PrevHash != previous.Hash {
			return false
		}
		if b.TimeStamp <= previous.TimeStamp {
			return false
		}
	}

	return true
}

// IsHashSolved checks the hash complies with the proof of work rules. The
// first difficulty characters of the hex digest must all be zero.
func IsHashSolved(difficulty uint, hash string) bool {
	const match = "00000000000000000000000000000000"

	if len(hash) != 64 || difficulty > uint(len(match)) {
		return false
	}

	return hash[:difficulty] == match[:difficulty]
}
