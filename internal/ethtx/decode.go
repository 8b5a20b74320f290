package ethtx

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github/chapool/go-signer/internal/rlp"
)

// Positional field layouts per type. Legacy lists may carry three trailing
// entries; in the EIP-155 pre-image form entry 6 holds the chain id.
const (
	legacyMinFields     = 6
	legacyChainIDFields = 9
	accessListFields    = 8
	dynamicFeeFields    = 9

	addressLength    = 20
	storageKeyLength = 32
)

// Decode parses a hex-encoded transaction, with or without a leading 0x
// marker. A first byte <= 0x7f selects EIP-2718 typed decoding (the byte is
// the type, the remainder an RLP list); anything else is decoded as a bare
// RLP list, i.e. a legacy transaction.
func Decode(raw string) (*Transaction, error) {
	payload := strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	if payload == "" {
		return nil, errors.Wrap(ErrInvalidFormat, "empty input")
	}

	data, err := hex.DecodeString(payload)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidFormat, "input is not valid hex")
	}
	if len(data) == 0 {
		return nil, errors.Wrap(ErrInvalidFormat, "empty input")
	}

	if data[0] <= 0x7f {
		return decodeTyped(data[0], data[1:])
	}

	fields, err := decodeFieldList(data)
	if err != nil {
		return nil, err
	}
	return decodeLegacy(fields)
}

func decodeTyped(typeByte byte, payload []byte) (*Transaction, error) {
	if typeByte > byte(TypeDynamicFee) {
		return nil, errors.Wrapf(ErrUnsupportedType, "type byte 0x%02x", typeByte)
	}

	fields, err := decodeFieldList(payload)
	if err != nil {
		return nil, err
	}

	switch Type(typeByte) {
	case TypeAccessList:
		return decodeAccessListTx(fields)
	case TypeDynamicFee:
		return decodeDynamicFeeTx(fields)
	default:
		// A 0x00 envelope wraps the legacy layout.
		return decodeLegacy(fields)
	}
}

func decodeFieldList(data []byte) ([]rlp.Item, error) {
	item, _, err := rlp.Decode(data)
	if err != nil {
		return nil, err
	}
	if item.Kind != rlp.KindList {
		return nil, errors.Wrap(ErrInvalidFormat, "transaction payload is not an RLP list")
	}
	return item.List, nil
}

// decodeLegacy reads [nonce, gasPrice, gasLimit, to, value, data] and, when at
// least nine entries are present, the chain id from the EIP-155 pre-image
// suffix [chainId, 0, 0].
func decodeLegacy(fields []rlp.Item) (*Transaction, error) {
	if len(fields) < legacyMinFields {
		return nil, errors.Wrapf(ErrInvalidFormat, "legacy transaction needs %d fields, got %d", legacyMinFields, len(fields))
	}

	to, err := decodeRecipient(fields[3])
	if err != nil {
		return nil, err
	}

	tx := &Transaction{
		Type:     TypeLegacy,
		Nonce:    fields[0].BigInt(),
		GasPrice: fields[1].BigInt(),
		GasLimit: fields[2].BigInt(),
		To:       to,
		Value:    fields[4].BigInt(),
		Data:     fields[5].Str,
	}

	if len(fields) >= legacyChainIDFields {
		tx.ChainID = fields[6].BigInt()
	}

	return tx, nil
}

// decodeAccessListTx reads the EIP-2930 layout
// [chainId, nonce, gasPrice, gasLimit, to, value, data, accessList].
func decodeAccessListTx(fields []rlp.Item) (*Transaction, error) {
	if len(fields) < accessListFields {
		return nil, errors.Wrapf(ErrInvalidFormat, "eip-2930 transaction needs %d fields, got %d", accessListFields, len(fields))
	}

	to, err := decodeRecipient(fields[4])
	if err != nil {
		return nil, err
	}

	accessList, err := decodeAccessList(fields[7])
	if err != nil {
		return nil, err
	}

	return &Transaction{
		Type:       TypeAccessList,
		ChainID:    fields[0].BigInt(),
		Nonce:      fields[1].BigInt(),
		GasPrice:   fields[2].BigInt(),
		GasLimit:   fields[3].BigInt(),
		To:         to,
		Value:      fields[5].BigInt(),
		Data:       fields[6].Str,
		AccessList: accessList,
	}, nil
}

// decodeDynamicFeeTx reads the EIP-1559 layout
// [chainId, nonce, maxPriorityFeePerGas, maxFeePerGas, gasLimit, to, value, data, accessList].
func decodeDynamicFeeTx(fields []rlp.Item) (*Transaction, error) {
	if len(fields) < dynamicFeeFields {
		return nil, errors.Wrapf(ErrInvalidFormat, "eip-1559 transaction needs %d fields, got %d", dynamicFeeFields, len(fields))
	}

	to, err := decodeRecipient(fields[5])
	if err != nil {
		return nil, err
	}

	accessList, err := decodeAccessList(fields[8])
	if err != nil {
		return nil, err
	}

	return &Transaction{
		Type:                 TypeDynamicFee,
		ChainID:              fields[0].BigInt(),
		Nonce:                fields[1].BigInt(),
		MaxPriorityFeePerGas: fields[2].BigInt(),
		MaxFeePerGas:         fields[3].BigInt(),
		GasLimit:             fields[4].BigInt(),
		To:                   to,
		Value:                fields[6].BigInt(),
		Data:                 fields[7].Str,
		AccessList:           accessList,
	}, nil
}

// decodeRecipient maps a zero-length byte string to "no recipient" (contract
// creation). Anything present must be a 20-byte address.
func decodeRecipient(item rlp.Item) (*common.Address, error) {
	if item.Kind != rlp.KindString {
		return nil, errors.Wrap(ErrInvalidFormat, "recipient is not a byte string")
	}
	if len(item.Str) == 0 {
		return nil, nil
	}
	if len(item.Str) != addressLength {
		return nil, errors.Wrapf(ErrInvalidFormat, "recipient address has %d bytes, want %d", len(item.Str), addressLength)
	}

	addr := common.BytesToAddress(item.Str)
	return &addr, nil
}

// decodeAccessList reads entries of the form [address, [storageKey...]].
// Entries without a usable address are dropped rather than rejected.
func decodeAccessList(item rlp.Item) ([]AccessTuple, error) {
	if item.Kind != rlp.KindList {
		return nil, errors.Wrap(ErrInvalidFormat, "access list is not a list")
	}

	accessList := make([]AccessTuple, 0, len(item.List))
	for _, entry := range item.List {
		if entry.Kind != rlp.KindList || len(entry.List) == 0 {
			continue
		}
		addrItem := entry.List[0]
		if addrItem.Kind != rlp.KindString || len(addrItem.Str) != addressLength {
			continue
		}

		tuple := AccessTuple{Address: common.BytesToAddress(addrItem.Str)}
		if len(entry.List) > 1 && entry.List[1].Kind == rlp.KindList {
			for _, key := range entry.List[1].List {
				if key.Kind == rlp.KindString && len(key.Str) == storageKeyLength {
					tuple.StorageKeys = append(tuple.StorageKeys, common.BytesToHash(key.Str))
				}
			}
		}

		accessList = append(accessList, tuple)
	}

	return accessList, nil
}
