package ethtx_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-signer/internal/ethtx"
	"github/chapool/go-signer/internal/rlp"
)

// Unsigned EIP-1559 transfer on mainnet: nonce 0, tip 1, fee 2, gas 21000,
// to 0xd8da...6045 (vitalik.eth), value 1 wei, data 0x707070.
const dynamicFeeVector = "02e20180010282520894d8da6bf26964af9d7eed9e03e53415d37aa960450183707070c0"

func TestDecodeDynamicFeeVector(t *testing.T) {
	tx, err := ethtx.Decode(dynamicFeeVector)
	require.NoError(t, err)

	assert.Equal(t, ethtx.TypeDynamicFee, tx.Type)
	assert.Equal(t, big.NewInt(1), tx.ChainID)
	assert.Equal(t, 0, tx.Nonce.Sign())
	assert.Equal(t, big.NewInt(1), tx.MaxPriorityFeePerGas)
	assert.Equal(t, big.NewInt(2), tx.MaxFeePerGas)
	assert.Equal(t, big.NewInt(21000), tx.GasLimit)
	require.NotNil(t, tx.To)
	assert.Equal(t, common.HexToAddress("0xd8da6bf26964af9d7eed9e03e53415d37aa96045"), *tx.To)
	assert.Equal(t, big.NewInt(1), tx.Value)
	assert.Equal(t, []byte{0x70, 0x70, 0x70}, tx.Data)
	assert.Empty(t, tx.AccessList)

	assert.False(t, tx.IsContractCreation())
	assert.Equal(t, "Ethereum Mainnet", tx.NetworkName())
	assert.Equal(t, big.NewInt(42000), tx.EstimatedFee())
}

func TestDecodeAcceptsMarker(t *testing.T) {
	withMarker, err := ethtx.Decode("0x" + dynamicFeeVector)
	require.NoError(t, err)
	bare, err := ethtx.Decode(dynamicFeeVector)
	require.NoError(t, err)
	assert.Equal(t, bare, withMarker)
}

func TestDecodeLegacy(t *testing.T) {
	// six fields: nonce 1, gasPrice 2 gwei, gas 21000, to, value, empty data
	to := common.HexToAddress("0xd8da6bf26964af9d7eed9e03e53415d37aa96045")
	encoded := rlp.Encode(rlp.ListItem(
		rlp.UintItem(1),
		rlp.UintItem(2000000000),
		rlp.UintItem(21000),
		rlp.StringItem(to.Bytes()),
		rlp.UintItem(5),
		rlp.StringItem(nil),
	))

	tx, err := ethtx.Decode(common.Bytes2Hex(encoded))
	require.NoError(t, err)

	assert.Equal(t, ethtx.TypeLegacy, tx.Type)
	assert.Equal(t, big.NewInt(1), tx.Nonce)
	assert.Equal(t, big.NewInt(2000000000), tx.GasPrice)
	assert.Nil(t, tx.ChainID)
	require.NotNil(t, tx.To)
	assert.Equal(t, to, *tx.To)
}

func TestDecodeLegacyWithChainIDSuffix(t *testing.T) {
	// nine fields: the EIP-155 pre-image form carries [chainId, 0, 0]
	encoded := rlp.Encode(rlp.ListItem(
		rlp.UintItem(7),
		rlp.UintItem(1000000000),
		rlp.UintItem(21000),
		rlp.StringItem(common.HexToAddress("0x1111111111111111111111111111111111111111").Bytes()),
		rlp.UintItem(0),
		rlp.StringItem(nil),
		rlp.UintItem(56),
		rlp.UintItem(0),
		rlp.UintItem(0),
	))

	tx, err := ethtx.Decode(common.Bytes2Hex(encoded))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(56), tx.ChainID)
	assert.Equal(t, "BNB Smart Chain", tx.NetworkName())
}

func TestDecodeContractCreation(t *testing.T) {
	// a present-but-empty recipient means contract creation
	encoded := rlp.Encode(rlp.ListItem(
		rlp.UintItem(0),
		rlp.UintItem(1),
		rlp.UintItem(100000),
		rlp.StringItem(nil),
		rlp.UintItem(0),
		rlp.StringItem([]byte{0x60, 0x60, 0x60}),
	))

	tx, err := ethtx.Decode(common.Bytes2Hex(encoded))
	require.NoError(t, err)
	assert.Nil(t, tx.To)
	assert.True(t, tx.IsContractCreation())
}

func TestDispatchBoundary(t *testing.T) {
	// first byte <= 0x7f routes to typed decoding; the type byte 0x03 is
	// outside the supported set
	_, err := ethtx.Decode("03c0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ethtx.ErrUnsupportedType))

	// first byte >= 0xc0 routes to legacy decoding and fails on field count,
	// not on type
	_, err = ethtx.Decode("c3010203")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ethtx.ErrInvalidFormat))
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]struct {
		input string
		want  error
	}{
		"empty string":     {"", ethtx.ErrInvalidFormat},
		"marker only":      {"0x", ethtx.ErrInvalidFormat},
		"odd-length hex":   {"02e", ethtx.ErrInvalidFormat},
		"not hex":          {"zz", ethtx.ErrInvalidFormat},
		"type byte 0x03":   {"03c0", ethtx.ErrUnsupportedType},
		"type byte 0x7f":   {"7fc0", ethtx.ErrUnsupportedType},
		"truncated rlp":    {"02e201800102", rlp.ErrMalformed},
		"payload not list": {"0283707070", ethtx.ErrInvalidFormat},
		"too few fields":   {"02c20180", ethtx.ErrInvalidFormat},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			tx, err := ethtx.Decode(tc.input)
			require.Error(t, err)
			assert.Nil(t, tx)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestDecodeAccessListLenient(t *testing.T) {
	key := common.HexToHash("0x0000000000000000000000000000000000000000000000000000000000000001")
	addr := common.HexToAddress("0x2222222222222222222222222222222222222222")

	accessList := rlp.ListItem(
		// entry without an address is dropped, not an error
		rlp.ListItem(),
		// entry with a malformed address is dropped as well
		rlp.ListItem(rlp.StringItem([]byte{0x01, 0x02})),
		rlp.ListItem(rlp.StringItem(addr.Bytes()), rlp.ListItem(rlp.StringItem(key.Bytes()))),
	)

	encoded := rlp.Encode(rlp.ListItem(
		rlp.UintItem(1),       // chainId
		rlp.UintItem(0),       // nonce
		rlp.UintItem(1),       // gasPrice
		rlp.UintItem(30000),   // gasLimit
		rlp.StringItem(addr.Bytes()),
		rlp.UintItem(0),
		rlp.StringItem(nil),
		accessList,
	))

	tx, err := ethtx.Decode("01" + common.Bytes2Hex(encoded))
	require.NoError(t, err)

	assert.Equal(t, ethtx.TypeAccessList, tx.Type)
	require.Len(t, tx.AccessList, 1)
	assert.Equal(t, addr, tx.AccessList[0].Address)
	require.Len(t, tx.AccessList[0].StorageKeys, 1)
	assert.Equal(t, key, tx.AccessList[0].StorageKeys[0])
}
