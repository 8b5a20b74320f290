package signer

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github/chapool/go-signer/internal/ethtx"
)

var (
	// ErrInvalidPrivateKey indicates a key that is not exactly 32 bytes, is
	// zero, or is not below the secp256k1 group order.
	ErrInvalidPrivateKey = errors.New("invalid private key")

	// ErrSigningFailure wraps errors from the underlying ECDSA primitive.
	ErrSigningFailure = errors.New("signing failure")
)

// Service turns an unsigned transaction and a raw private key into a
// broadcast-ready signed transaction. Implementations are stateless and must
// not retain, log, or cache key bytes beyond the single call.
type Service interface {
	// SignTransaction signs tx with the 32-byte private key. The caller owns
	// the key buffer and should zero it after the call returns.
	SignTransaction(ctx context.Context, tx *ethtx.Transaction, privateKey []byte) (*SignResult, error)
}

// SignResult is a signed transaction in its wire forms.
type SignResult struct {
	Raw    []byte      // RLP encoding, type byte included for typed transactions
	Hex    string      // Raw as a 0x-prefixed hex string
	TxHash common.Hash // Keccak-256 of Raw
}
