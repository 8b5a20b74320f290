package signer

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/chapool/go-signer/internal/ethtx"
)

const privateKeyLength = 32

// eip155VOffset is added to the recovery id for legacy transactions:
// v = recoveryId + chainId*2 + 35.
const eip155VOffset = 35

// SignTransaction builds the type-specific pre-image, hashes it with
// Keccak-256, and produces a deterministic ECDSA signature over secp256k1.
// Legacy transactions bind the chain id into v per EIP-155; typed
// transactions carry the raw y-parity.
func (s *service) SignTransaction(_ context.Context, tx *ethtx.Transaction, privateKey []byte) (*SignResult, error) {
	if err := validatePrivateKey(privateKey); err != nil {
		return nil, err
	}

	key, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPrivateKey, err.Error())
	}
	defer zeroKey(key)

	preimage, err := ethtx.EncodeUnsigned(tx)
	if err != nil {
		return nil, err
	}

	// The hashing step is explicit: signing raw pre-image bytes would produce
	// wire-incompatible signatures.
	digest := crypto.Keccak256(preimage)

	// 65 bytes: r || s || recovery id. Deterministic per RFC 6979, low-s.
	signature, err := crypto.Sign(digest, key)
	if err != nil {
		return nil, errors.Wrap(ErrSigningFailure, err.Error())
	}

	r := new(big.Int).SetBytes(signature[:32])
	sVal := new(big.Int).SetBytes(signature[32:64])
	v := recoveryValue(tx, signature[64])

	signed, err := ethtx.EncodeSigned(tx, v, r, sVal)
	if err != nil {
		return nil, err
	}

	return &SignResult{
		Raw:    signed,
		Hex:    hexutil.Encode(signed),
		TxHash: ethtx.Hash(signed),
	}, nil
}

// recoveryValue computes v from the recovery id: chainId*2+35+recId for
// legacy transactions, the bare y-parity bit for typed ones.
func recoveryValue(tx *ethtx.Transaction, recoveryID byte) *big.Int {
	v := new(big.Int).SetUint64(uint64(recoveryID))
	if tx.Type != ethtx.TypeLegacy {
		return v
	}

	if tx.ChainID != nil {
		v.Add(v, new(big.Int).Lsh(tx.ChainID, 1))
	}
	return v.Add(v, big.NewInt(eip155VOffset))
}

func validatePrivateKey(privateKey []byte) error {
	if len(privateKey) != privateKeyLength {
		return errors.Wrapf(ErrInvalidPrivateKey, "key has %d bytes, want %d", len(privateKey), privateKeyLength)
	}

	scalar := new(big.Int).SetBytes(privateKey)
	defer zeroBig(scalar)

	if scalar.Sign() == 0 {
		return errors.Wrap(ErrInvalidPrivateKey, "key is zero")
	}
	if scalar.Cmp(crypto.S256().Params().N) >= 0 {
		return errors.Wrap(ErrInvalidPrivateKey, "key is not below the secp256k1 group order")
	}

	return nil
}

// zeroKey scrubs the scalar of a parsed key once signing is done.
func zeroKey(key *ecdsa.PrivateKey) {
	zeroBig(key.D)
}

func zeroBig(v *big.Int) {
	words := v.Bits()
	for i := range words {
		words[i] = 0
	}
}
