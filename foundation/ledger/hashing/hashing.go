// Package hashing provides the digest strategy used to seal and verify
// blocks in the ledger. The strategy is injected into the block and ledger
// packages so a deterministic double can replace SHA-256 in tests.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hasher represents the behavior required to digest the canonical byte
// encoding of a block's fields.
type Hasher interface {
	Hash(data []byte) string
}

// SHA256 is the production hashing strategy. The digest is hex encoded
// without a prefix so proof of work checks reduce to a string prefix test.
type SHA256 struct{}

// Hash returns the hex encoded SHA-256 digest of the data.
func (SHA256) Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
