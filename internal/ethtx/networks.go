package ethtx

import "fmt"

// networkNames maps well-known chain ids to display names.
var networkNames = map[uint64]string{
	1:        "Ethereum Mainnet",
	10:       "OP Mainnet",
	56:       "BNB Smart Chain",
	97:       "BSC Testnet",
	137:      "Polygon",
	8453:     "Base",
	17000:    "Holesky",
	42161:    "Arbitrum One",
	11155111: "Sepolia",
}

// NetworkName returns the human-readable network name for the transaction's
// chain id, or "chain <id>" for chains not in the table.
func (tx *Transaction) NetworkName() string {
	id := bigOrZero(tx.ChainID)
	if id.IsUint64() {
		if name, ok := networkNames[id.Uint64()]; ok {
			return name
		}
	}
	return fmt.Sprintf("chain %s", id)
}
