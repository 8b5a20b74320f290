package ethtx_test

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-signer/internal/ethtx"
)

func addr(s string) *common.Address {
	a := common.HexToAddress(s)
	return &a
}

func TestEncodeUnsignedReproducesVector(t *testing.T) {
	tx, err := ethtx.Decode(dynamicFeeVector)
	require.NoError(t, err)

	encoded, err := ethtx.EncodeUnsigned(tx)
	require.NoError(t, err)

	assert.Equal(t, dynamicFeeVector, hex.EncodeToString(encoded))
}

func TestRoundTripLegacy(t *testing.T) {
	tx := &ethtx.Transaction{
		Type:     ethtx.TypeLegacy,
		ChainID:  big.NewInt(1),
		Nonce:    big.NewInt(42),
		GasPrice: big.NewInt(20000000000),
		GasLimit: big.NewInt(21000),
		To:       addr("0xd8da6bf26964af9d7eed9e03e53415d37aa96045"),
		Value:    big.NewInt(1000000000000000000),
		Data:     []byte{0xca, 0xfe},
	}

	encoded, err := ethtx.EncodeUnsigned(tx)
	require.NoError(t, err)

	// the unsigned legacy list carries [chainId, 0, 0], so it decodes with
	// the chain id intact
	decoded, err := ethtx.Decode(hex.EncodeToString(encoded))
	require.NoError(t, err)

	assert.Equal(t, tx.Type, decoded.Type)
	assert.Equal(t, tx.ChainID, decoded.ChainID)
	assert.Equal(t, tx.Nonce, decoded.Nonce)
	assert.Equal(t, tx.GasPrice, decoded.GasPrice)
	assert.Equal(t, tx.GasLimit, decoded.GasLimit)
	assert.Equal(t, tx.To, decoded.To)
	assert.Equal(t, tx.Value, decoded.Value)
	assert.Equal(t, tx.Data, decoded.Data)
}

func TestRoundTripAccessList(t *testing.T) {
	tx := &ethtx.Transaction{
		Type:     ethtx.TypeAccessList,
		ChainID:  big.NewInt(1),
		Nonce:    big.NewInt(7),
		GasPrice: big.NewInt(1000000000),
		GasLimit: big.NewInt(60000),
		To:       addr("0x2222222222222222222222222222222222222222"),
		Value:    big.NewInt(0),
		AccessList: []ethtx.AccessTuple{
			{
				Address: common.HexToAddress("0x3333333333333333333333333333333333333333"),
				StorageKeys: []common.Hash{
					common.HexToHash("0x0000000000000000000000000000000000000000000000000000000000000001"),
					common.HexToHash("0x00000000000000000000000000000000000000000000000000000000000000ff"),
				},
			},
		},
	}

	encoded, err := ethtx.EncodeUnsigned(tx)
	require.NoError(t, err)

	decoded, err := ethtx.Decode(hex.EncodeToString(encoded))
	require.NoError(t, err)

	assert.Equal(t, tx.Type, decoded.Type)
	assert.Equal(t, tx.GasPrice, decoded.GasPrice)
	require.Len(t, decoded.AccessList, 1)
	assert.Equal(t, tx.AccessList[0].Address, decoded.AccessList[0].Address)
	// storage keys keep their original order
	assert.Equal(t, tx.AccessList[0].StorageKeys, decoded.AccessList[0].StorageKeys)
}

func TestRoundTripDynamicFee(t *testing.T) {
	tx := &ethtx.Transaction{
		Type:                 ethtx.TypeDynamicFee,
		ChainID:              big.NewInt(137),
		Nonce:                big.NewInt(256),
		MaxPriorityFeePerGas: big.NewInt(1500000000),
		MaxFeePerGas:         big.NewInt(45000000000),
		GasLimit:             big.NewInt(21000),
		To:                   nil, // contract creation
		Value:                big.NewInt(0),
		Data:                 []byte{0x60, 0x80, 0x60, 0x40},
		AccessList:           []ethtx.AccessTuple{},
	}

	encoded, err := ethtx.EncodeUnsigned(tx)
	require.NoError(t, err)

	// typed envelope marker
	assert.Equal(t, byte(0x02), encoded[0])

	decoded, err := ethtx.Decode(hex.EncodeToString(encoded))
	require.NoError(t, err)

	assert.Equal(t, tx.Type, decoded.Type)
	assert.Equal(t, tx.ChainID, decoded.ChainID)
	assert.Equal(t, tx.Nonce, decoded.Nonce)
	assert.Equal(t, tx.MaxPriorityFeePerGas, decoded.MaxPriorityFeePerGas)
	assert.Equal(t, tx.MaxFeePerGas, decoded.MaxFeePerGas)
	assert.Nil(t, decoded.To)
	assert.True(t, decoded.IsContractCreation())
	assert.Equal(t, tx.Data, decoded.Data)
	assert.Equal(t, "Polygon", decoded.NetworkName())
}

func TestEncodeSignedAppendsSignature(t *testing.T) {
	tx, err := ethtx.Decode(dynamicFeeVector)
	require.NoError(t, err)

	signed, err := ethtx.EncodeSigned(tx, big.NewInt(0), big.NewInt(1), big.NewInt(2))
	require.NoError(t, err)

	// 0x02 || rlp([... , v, r, s]); v=0 encodes as the empty string
	assert.Equal(t, byte(0x02), signed[0])
	tail := signed[len(signed)-3:]
	assert.Equal(t, []byte{0x80, 0x01, 0x02}, tail)
}

func TestEncodeUnsignedUnknownType(t *testing.T) {
	tx := &ethtx.Transaction{Type: ethtx.Type(9)}
	_, err := ethtx.EncodeUnsigned(tx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ethtx.ErrUnsupportedType)
}
