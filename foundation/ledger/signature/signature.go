// Package signature provides the signing collaborator for the ledger. The
// ledger core carries signatures as opaque strings; producing and checking
// them happens here, outside the chain's own rules.
package signature

import (
	"crypto/ecdsa"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// stamp is mixed into every digest that gets signed so signatures produced
// here can never be replayed against another system.
var stamp = []byte("\x19Vital Signed Message:\n32")

// Sign hashes the value and signs it with the private key, returning the
// hex encoded signature.
func Sign(value any, privateKey *ecdsa.PrivateKey) (string, error) {
	data, err := digest(value)
	if err != nil {
		return "", err
	}

	sig, err := crypto.Sign(data, privateKey)
	if err != nil {
		return "", err
	}

	return hexutil.Encode(sig), nil
}

// RecoverAddress extracts the address of the account that signed the
// value. The same exact value must be provided or a different address is
// recovered.
func RecoverAddress(value any, sig string) (string, error) {
	data, err := digest(value)
	if err != nil {
		return "", err
	}

	sigBytes, err := hexutil.Decode(sig)
	if err != nil {
		return "", err
	}

	publicKey, err := crypto.SigToPub(data, sigBytes)
	if err != nil {
		return "", err
	}

	return crypto.PubkeyToAddress(*publicKey).String(), nil
}

// Address returns the address for the specified private key.
func Address(privateKey *ecdsa.PrivateKey) string {
	return crypto.PubkeyToAddress(privateKey.PublicKey).String()
}

// =============================================================================

// Signer binds a private key to the ledger's Signer interface so mined
// blocks carry this node's signature.
type Signer struct {
	privateKey *ecdsa.PrivateKey
}

// NewSigner constructs a Signer for the specified private key.
func NewSigner(privateKey *ecdsa.PrivateKey) *Signer {
	return &Signer{privateKey: privateKey}
}

// Sign implements the ledger Signer interface.
func (s *Signer) Sign(value any) (string, error) {
	return Sign(value, s.privateKey)
}

// Address returns the address for the signer's key.
func (s *Signer) Address() string {
	return Address(s.privateKey)
}

// =============================================================================

// digest produces the 32 byte array that represents the value with the
// stamp embedded into the final hash.
func digest(value any) ([]byte, error) {
	v, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	txHash := crypto.Keccak256(v)

	return crypto.Keccak256(stamp, txHash), nil
}
