// Package genesis maintains access to the genesis file holding the chain's
// operating parameters.
package genesis

import (
	"encoding/json"
	"os"
	"time"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date         time.Time `json:"date"`
	ChainName    string    `json:"chain_name"`    // A human readable name for this running instance.
	Difficulty   uint      `json:"difficulty"`    // Number of leading zero hex characters required of a mined hash.
	MiningReward uint64    `json:"mining_reward"` // Reward for mining a block.
	MaxPending   int       `json:"max_pending"`   // Maximum transactions held in the pending pool, zero for unbounded.
}

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}
