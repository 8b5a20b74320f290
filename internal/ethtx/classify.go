package ethtx

import (
	"encoding/hex"
	"strings"
)

// InputKind classifies cleaned hex input handed over by the scanning layer.
type InputKind int

const (
	InputUnknown InputKind = iota
	InputTransaction
	InputPrivateKey
)

func (k InputKind) String() string {
	switch k {
	case InputTransaction:
		return "transaction"
	case InputPrivateKey:
		return "private-key"
	default:
		return "unknown"
	}
}

// Classify decides whether a scanned hex string is a decodable transaction, a
// 32-byte private key candidate, or neither. Transaction decoding wins over
// the key-length heuristic so a 32-byte payload that parses as a transaction
// is never mistaken for key material.
func Classify(input string) InputKind {
	if _, err := Decode(input); err == nil {
		return InputTransaction
	}

	payload := strings.TrimPrefix(strings.TrimSpace(input), "0x")
	if decoded, err := hex.DecodeString(payload); err == nil && len(decoded) == 32 {
		return InputPrivateKey
	}

	return InputUnknown
}
