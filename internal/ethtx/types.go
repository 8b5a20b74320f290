package ethtx

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/chapool/go-signer/internal/units"
)

var (
	// ErrInvalidFormat indicates well-formed RLP carrying the wrong field count
	// or field shape for the claimed transaction type.
	ErrInvalidFormat = errors.New("invalid transaction format")

	// ErrUnsupportedType indicates an EIP-2718 envelope whose type byte is
	// outside the supported set {0, 1, 2}.
	ErrUnsupportedType = errors.New("unsupported transaction type")
)

// Type tags the three supported transaction layouts.
type Type uint8

const (
	// TypeLegacy is a pre-EIP-2718 transaction encoded as a bare RLP list.
	TypeLegacy Type = 0x00
	// TypeAccessList is an EIP-2930 transaction (access list, single gas price).
	TypeAccessList Type = 0x01
	// TypeDynamicFee is an EIP-1559 transaction (max fee / max priority fee).
	TypeDynamicFee Type = 0x02
)

func (t Type) String() string {
	switch t {
	case TypeLegacy:
		return "legacy"
	case TypeAccessList:
		return "eip-2930"
	case TypeDynamicFee:
		return "eip-1559"
	default:
		return "unknown"
	}
}

// AccessTuple is one access-list entry: an address plus the storage keys the
// transaction pre-declares for it, in original order.
type AccessTuple struct {
	Address     common.Address
	StorageKeys []common.Hash
}

// Transaction is the canonical record across the three supported layouts.
// Exactly one fee-field pair is populated per type: GasPrice for legacy and
// EIP-2930, MaxFeePerGas/MaxPriorityFeePerGas for EIP-1559. Instances are not
// mutated after decode; modifications copy.
type Transaction struct {
	Type                 Type
	ChainID              *big.Int
	Nonce                *big.Int
	GasPrice             *big.Int
	MaxPriorityFeePerGas *big.Int
	MaxFeePerGas         *big.Int
	GasLimit             *big.Int
	To                   *common.Address // nil means contract creation
	Value                *big.Int
	Data                 []byte
	AccessList           []AccessTuple
}

// IsContractCreation reports whether the transaction has no recipient.
func (tx *Transaction) IsContractCreation() bool {
	return tx.To == nil
}

// EffectiveGasPrice is the price used for fee estimation: GasPrice for legacy
// and EIP-2930 transactions, MaxFeePerGas for EIP-1559.
func (tx *Transaction) EffectiveGasPrice() *big.Int {
	if tx.Type == TypeDynamicFee {
		return bigOrZero(tx.MaxFeePerGas)
	}
	return bigOrZero(tx.GasPrice)
}

// EstimatedFee is the worst-case fee in wei: gasLimit * effective gas price.
func (tx *Transaction) EstimatedFee() *big.Int {
	return new(big.Int).Mul(bigOrZero(tx.GasLimit), tx.EffectiveGasPrice())
}

// FormattedFee renders the estimated fee as an exact ETH amount.
func (tx *Transaction) FormattedFee() string {
	return units.FormatWei(tx.EstimatedFee())
}

// FormattedValue renders the transferred value as an exact ETH amount.
func (tx *Transaction) FormattedValue() string {
	return units.FormatWei(bigOrZero(tx.Value))
}

// Hash computes the transaction identifier: the Keccak-256 digest of the
// signed encoding.
func Hash(signed []byte) common.Hash {
	return crypto.Keccak256Hash(signed)
}

func bigOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
