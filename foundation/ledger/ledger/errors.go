package ledger

import (
	"errors"
	"fmt"

	"github.com/vitalchain/ledger/foundation/ledger/block"
)

// ErrNoTransactions is returned when a block is requested to be mined and
// there are no transactions in the pool.
var ErrNoTransactions = errors.New("no transactions in the pool")

// ChainIntegrityError reports a mined candidate that failed append time
// validation. It signals a construction defect; the mining attempt is
// abandoned and the chain and pool are left unchanged.
type ChainIntegrityError struct {
	Index  uint64
	Reason string
}

// Error implements the error interface.
func (cie *ChainIntegrityError) Error() string {
	return fmt.Sprintf("chain integrity: blk[%d]: %s", cie.Index, cie.Reason)
}

// IsChainIntegrityError reports whether a ChainIntegrityError exists in
// the chain of wrapped errors.
func IsChainIntegrityError(err error) bool {
	var cie *ChainIntegrityError
	return errors.As(err, &cie)
}

// IsValidationError reports whether the error represents malformed input.
func IsValidationError(err error) bool {
	return block.IsValidationError(err)
}
