package ethtx

import (
	"math/big"

	"github.com/pkg/errors"
	"github/chapool/go-signer/internal/rlp"
)

// EncodeUnsigned produces the canonical unsigned encoding of tx, which is
// byte-exact the signing pre-image: typed transactions get the single type
// byte prepended to the RLP list; legacy transactions carry the EIP-155
// [chainId, 0, 0] suffix inside the list to bind the chain id into the
// signature.
func EncodeUnsigned(tx *Transaction) ([]byte, error) {
	fields, err := unsignedFields(tx)
	if err != nil {
		return nil, err
	}

	if tx.Type == TypeLegacy {
		fields = append(fields,
			rlp.BigIntItem(tx.ChainID),
			rlp.UintItem(0),
			rlp.UintItem(0),
		)
	}

	return seal(tx.Type, fields), nil
}

// EncodeSigned produces the broadcast encoding: the unsigned fields followed
// by v, r, s as minimal big-endian integers, with the type byte prepended for
// typed transactions.
func EncodeSigned(tx *Transaction, v, r, s *big.Int) ([]byte, error) {
	fields, err := unsignedFields(tx)
	if err != nil {
		return nil, err
	}

	fields = append(fields,
		rlp.BigIntItem(v),
		rlp.BigIntItem(r),
		rlp.BigIntItem(s),
	)

	return seal(tx.Type, fields), nil
}

// seal RLP-encodes the field list and prepends the EIP-2718 type byte for
// non-legacy transactions.
func seal(txType Type, fields []rlp.Item) []byte {
	encoded := rlp.Encode(rlp.ListItem(fields...))
	if txType == TypeLegacy {
		return encoded
	}
	return append([]byte{byte(txType)}, encoded...)
}

// unsignedFields lays out the type-specific field list without any signature
// or replay-protection entries.
func unsignedFields(tx *Transaction) ([]rlp.Item, error) {
	switch tx.Type {
	case TypeLegacy:
		return []rlp.Item{
			rlp.BigIntItem(tx.Nonce),
			rlp.BigIntItem(tx.GasPrice),
			rlp.BigIntItem(tx.GasLimit),
			recipientItem(tx),
			rlp.BigIntItem(tx.Value),
			rlp.StringItem(tx.Data),
		}, nil

	case TypeAccessList:
		return []rlp.Item{
			rlp.BigIntItem(tx.ChainID),
			rlp.BigIntItem(tx.Nonce),
			rlp.BigIntItem(tx.GasPrice),
			rlp.BigIntItem(tx.GasLimit),
			recipientItem(tx),
			rlp.BigIntItem(tx.Value),
			rlp.StringItem(tx.Data),
			accessListItem(tx.AccessList),
		}, nil

	case TypeDynamicFee:
		return []rlp.Item{
			rlp.BigIntItem(tx.ChainID),
			rlp.BigIntItem(tx.Nonce),
			rlp.BigIntItem(tx.MaxPriorityFeePerGas),
			rlp.BigIntItem(tx.MaxFeePerGas),
			rlp.BigIntItem(tx.GasLimit),
			recipientItem(tx),
			rlp.BigIntItem(tx.Value),
			rlp.StringItem(tx.Data),
			accessListItem(tx.AccessList),
		}, nil

	default:
		return nil, errors.Wrapf(ErrUnsupportedType, "type %d", tx.Type)
	}
}

func recipientItem(tx *Transaction) rlp.Item {
	if tx.To == nil {
		return rlp.StringItem([]byte{})
	}
	return rlp.StringItem(tx.To.Bytes())
}

func accessListItem(accessList []AccessTuple) rlp.Item {
	entries := make([]rlp.Item, 0, len(accessList))
	for _, tuple := range accessList {
		keys := make([]rlp.Item, 0, len(tuple.StorageKeys))
		for _, key := range tuple.StorageKeys {
			keys = append(keys, rlp.StringItem(key.Bytes()))
		}
		entries = append(entries, rlp.ListItem(
			rlp.StringItem(tuple.Address.Bytes()),
			rlp.ListItem(keys...),
		))
	}

	return rlp.ListItem(entries...)
}
