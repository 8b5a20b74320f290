package rlp

import (
	"math/big"

	"github.com/pkg/errors"
)

// ErrMalformed indicates a structurally invalid RLP byte stream (empty input,
// truncated payload, or a declared length exceeding the remaining input).
var ErrMalformed = errors.New("malformed RLP")

// Kind discriminates the two RLP item shapes.
type Kind int

const (
	// KindString is an opaque byte string. The codec never interprets its contents.
	KindString Kind = iota
	// KindList is an ordered sequence of nested items.
	KindList
)

// Item is a decoded RLP value: either a byte string or a list of items.
// An empty string and an empty list are distinct and both legal.
type Item struct {
	Kind Kind
	Str  []byte
	List []Item
}

// StringItem wraps a byte slice as a string item.
func StringItem(b []byte) Item {
	return Item{Kind: KindString, Str: b}
}

// ListItem wraps the given items as a list item.
func ListItem(items ...Item) Item {
	if items == nil {
		items = []Item{}
	}
	return Item{Kind: KindList, List: items}
}

// UintItem encodes an unsigned integer as its minimal big-endian byte string.
// Zero encodes as the empty string.
func UintItem(v uint64) Item {
	if v == 0 {
		return Item{Kind: KindString, Str: []byte{}}
	}
	return BigIntItem(new(big.Int).SetUint64(v))
}

// BigIntItem encodes a non-negative big integer as its minimal big-endian byte
// string. nil and zero both encode as the empty string.
func BigIntItem(v *big.Int) Item {
	if v == nil || v.Sign() == 0 {
		return Item{Kind: KindString, Str: []byte{}}
	}
	return Item{Kind: KindString, Str: v.Bytes()}
}

// BigInt interprets a string item as a big-endian unsigned integer.
func (i Item) BigInt() *big.Int {
	return new(big.Int).SetBytes(i.Str)
}

// Encode returns the canonical RLP encoding of item.
func Encode(item Item) []byte {
	if item.Kind == KindString {
		return encodeString(item.Str)
	}

	var payload []byte
	for _, sub := range item.List {
		payload = append(payload, Encode(sub)...)
	}

	return append(encodeLength(len(payload), listShortTag), payload...)
}

// Decode reads a single item from the front of input and returns it together
// with the number of bytes consumed. Trailing bytes are left for the caller.
func Decode(input []byte) (Item, int, error) {
	if len(input) == 0 {
		return Item{}, 0, errors.Wrap(ErrMalformed, "empty input")
	}

	tag := input[0]
	switch {
	case tag <= singleByteMax:
		// A single byte below 0x80 is its own encoding.
		return Item{Kind: KindString, Str: []byte{tag}}, 1, nil

	case tag <= stringShortMax:
		length := int(tag - stringShortTag)
		if err := checkRemaining(input[1:], length); err != nil {
			return Item{}, 0, err
		}
		str := make([]byte, length)
		copy(str, input[1:1+length])
		return Item{Kind: KindString, Str: str}, 1 + length, nil

	case tag <= stringLongMax:
		length, headerLen, err := decodeLongLength(input, stringShortMax)
		if err != nil {
			return Item{}, 0, err
		}
		str := make([]byte, length)
		copy(str, input[headerLen:headerLen+length])
		return Item{Kind: KindString, Str: str}, headerLen + length, nil

	case tag <= listShortMax:
		length := int(tag - listShortTag)
		if err := checkRemaining(input[1:], length); err != nil {
			return Item{}, 0, err
		}
		items, err := decodeListPayload(input[1 : 1+length])
		if err != nil {
			return Item{}, 0, err
		}
		return Item{Kind: KindList, List: items}, 1 + length, nil

	default:
		length, headerLen, err := decodeLongLength(input, listShortMax)
		if err != nil {
			return Item{}, 0, err
		}
		items, err := decodeListPayload(input[headerLen : headerLen+length])
		if err != nil {
			return Item{}, 0, err
		}
		return Item{Kind: KindList, List: items}, headerLen + length, nil
	}
}

const (
	singleByteMax  = 0x7f
	stringShortTag = 0x80
	stringShortMax = 0xb7
	stringLongMax  = 0xbf
	listShortTag   = 0xc0
	listShortMax   = 0xf7

	shortLengthMax = 55
)

func encodeString(b []byte) []byte {
	if len(b) == 1 && b[0] <= singleByteMax {
		return []byte{b[0]}
	}
	return append(encodeLength(len(b), stringShortTag), b...)
}

// encodeLength builds the length prefix for the given payload length and base
// tag (0x80 for strings, 0xc0 for lists).
func encodeLength(length int, tag byte) []byte {
	if length <= shortLengthMax {
		return []byte{tag + byte(length)}
	}

	be := new(big.Int).SetInt64(int64(length)).Bytes()
	prefix := []byte{tag + shortLengthMax + byte(len(be))}
	return append(prefix, be...)
}

// decodeLongLength reads the big-endian payload length of a long-form string or
// list. shortMax is 0xb7 for strings, 0xf7 for lists.
func decodeLongLength(input []byte, shortMax byte) (length int, headerLen int, err error) {
	lenOfLen := int(input[0] - shortMax)
	if err := checkRemaining(input[1:], lenOfLen); err != nil {
		return 0, 0, err
	}

	declared := new(big.Int).SetBytes(input[1 : 1+lenOfLen])
	if !declared.IsInt64() || declared.Int64() > int64(len(input)) {
		return 0, 0, errors.Wrapf(ErrMalformed, "declared length %s exceeds remaining input %d", declared, len(input)-1-lenOfLen)
	}

	length = int(declared.Int64())
	headerLen = 1 + lenOfLen
	if err := checkRemaining(input[headerLen:], length); err != nil {
		return 0, 0, err
	}

	return length, headerLen, nil
}

// decodeListPayload consumes items from payload until it is exhausted.
func decodeListPayload(payload []byte) ([]Item, error) {
	items := []Item{}
	for len(payload) > 0 {
		item, consumed, err := Decode(payload)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		payload = payload[consumed:]
	}

	return items, nil
}

func checkRemaining(input []byte, need int) error {
	if need > len(input) {
		return errors.Wrapf(ErrMalformed, "declared length %d exceeds remaining input %d", need, len(input))
	}
	return nil
}
