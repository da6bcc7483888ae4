package signature_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/vitalchain/ledger/foundation/ledger/block"
	"github.com/vitalchain/ledger/foundation/ledger/signature"
)

func TestSignRecover(t *testing.T) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}

	tx := block.Tx{
		From:      signature.Address(privateKey),
		To:        "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32",
		Amount:    25,
		Timestamp: 1700000000000,
	}

	sig, err := signature.Sign(tx, privateKey)
	if err != nil {
		t.Fatalf("signing transaction: %v", err)
	}

	from, err := signature.RecoverAddress(tx, sig)
	if err != nil {
		t.Fatalf("recovering address: %v", err)
	}

	if from != tx.From {
		t.Fatalf("recovered address %s, expected %s", from, tx.From)
	}

	// A different value must not recover the signer's address.
	altered := tx
	altered.Amount = 26
	from, err = signature.RecoverAddress(altered, sig)
	if err == nil && from == tx.From {
		t.Fatal("expected the altered value not to recover the signer")
	}
}

func TestSignerInterface(t *testing.T) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}

	signer := signature.NewSigner(privateKey)

	data := []block.Tx{{From: "A", To: "B", Amount: 1}}
	sig, err := signer.Sign(data)
	if err != nil {
		t.Fatalf("signing block data: %v", err)
	}

	from, err := signature.RecoverAddress(data, sig)
	if err != nil {
		t.Fatalf("recovering address: %v", err)
	}

	if from != signer.Address() {
		t.Fatalf("recovered address %s, expected %s", from, signer.Address())
	}
}
