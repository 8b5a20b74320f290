package rlp_test

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-signer/internal/rlp"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestEncodeStrings(t *testing.T) {
	// single byte below 0x80 encodes as itself
	assert.Equal(t, []byte{0x0f}, rlp.Encode(rlp.StringItem([]byte{0x0f})))

	// single byte at 0x80 needs a length prefix
	assert.Equal(t, []byte{0x81, 0x80}, rlp.Encode(rlp.StringItem([]byte{0x80})))

	// empty string
	assert.Equal(t, []byte{0x80}, rlp.Encode(rlp.StringItem(nil)))

	// short string
	assert.Equal(t, mustHex(t, "83646f67"), rlp.Encode(rlp.StringItem([]byte("dog"))))

	// 55 bytes is still the short form
	fiftyFive := bytes.Repeat([]byte{0x61}, 55)
	encoded := rlp.Encode(rlp.StringItem(fiftyFive))
	assert.Equal(t, byte(0x80+55), encoded[0])
	assert.Len(t, encoded, 56)

	// 56 bytes switches to the long form
	fiftySix := bytes.Repeat([]byte{0x61}, 56)
	encoded = rlp.Encode(rlp.StringItem(fiftySix))
	assert.Equal(t, []byte{0xb8, 56}, encoded[:2])
	assert.Len(t, encoded, 58)
}

func TestEncodeLists(t *testing.T) {
	// empty list
	assert.Equal(t, []byte{0xc0}, rlp.Encode(rlp.ListItem()))

	// ["cat", "dog"]
	catDog := rlp.ListItem(rlp.StringItem([]byte("cat")), rlp.StringItem([]byte("dog")))
	assert.Equal(t, mustHex(t, "c88363617483646f67"), rlp.Encode(catDog))

	// the set-theoretic representation of three: [ [], [[]], [ [], [[]] ] ]
	three := rlp.ListItem(
		rlp.ListItem(),
		rlp.ListItem(rlp.ListItem()),
		rlp.ListItem(rlp.ListItem(), rlp.ListItem(rlp.ListItem())),
	)
	assert.Equal(t, mustHex(t, "c7c0c1c0c3c0c1c0"), rlp.Encode(three))

	// a list whose payload exceeds 55 bytes takes the long form
	long := rlp.ListItem(rlp.StringItem(bytes.Repeat([]byte{0x01}, 60)))
	encoded := rlp.Encode(long)
	assert.Equal(t, byte(0xf8), encoded[0])
	assert.Equal(t, byte(62), encoded[1])
}

func TestEncodeIntegersMinimal(t *testing.T) {
	// zero is the empty byte string
	assert.Equal(t, []byte{0x80}, rlp.Encode(rlp.UintItem(0)))
	assert.Equal(t, []byte{0x80}, rlp.Encode(rlp.BigIntItem(nil)))
	assert.Equal(t, []byte{0x80}, rlp.Encode(rlp.BigIntItem(big.NewInt(0))))

	// small values ride the single-byte rule
	assert.Equal(t, []byte{0x0f}, rlp.Encode(rlp.UintItem(15)))

	// 256 must be exactly two bytes, no leading zero
	assert.Equal(t, []byte{0x82, 0x01, 0x00}, rlp.Encode(rlp.UintItem(256)))
	assert.Equal(t, []byte{0x82, 0x01, 0x00}, rlp.Encode(rlp.BigIntItem(big.NewInt(256))))
}

func TestDecodeStrings(t *testing.T) {
	item, consumed, err := rlp.Decode([]byte{0x0f})
	require.NoError(t, err)
	assert.Equal(t, rlp.KindString, item.Kind)
	assert.Equal(t, []byte{0x0f}, item.Str)
	assert.Equal(t, 1, consumed)

	item, consumed, err = rlp.Decode(mustHex(t, "83646f67"))
	require.NoError(t, err)
	assert.Equal(t, []byte("dog"), item.Str)
	assert.Equal(t, 4, consumed)

	// long form
	payload := strings.Repeat("a", 56)
	item, consumed, err = rlp.Decode(append([]byte{0xb8, 56}, payload...))
	require.NoError(t, err)
	assert.Equal(t, []byte(payload), item.Str)
	assert.Equal(t, 58, consumed)
}

func TestDecodeLists(t *testing.T) {
	item, consumed, err := rlp.Decode(mustHex(t, "c88363617483646f67"))
	require.NoError(t, err)
	require.Equal(t, rlp.KindList, item.Kind)
	require.Len(t, item.List, 2)
	assert.Equal(t, []byte("cat"), item.List[0].Str)
	assert.Equal(t, []byte("dog"), item.List[1].Str)
	assert.Equal(t, 9, consumed)

	// empty string and empty list are distinct
	item, _, err = rlp.Decode([]byte{0x80})
	require.NoError(t, err)
	assert.Equal(t, rlp.KindString, item.Kind)
	assert.Empty(t, item.Str)

	item, _, err = rlp.Decode([]byte{0xc0})
	require.NoError(t, err)
	assert.Equal(t, rlp.KindList, item.Kind)
	assert.Empty(t, item.List)
}

func TestDecodeConsumesExactly(t *testing.T) {
	// trailing bytes are left for the caller
	input := append(mustHex(t, "83646f67"), 0xde, 0xad)
	item, consumed, err := rlp.Decode(input)
	require.NoError(t, err)
	assert.Equal(t, []byte("dog"), item.Str)
	assert.Equal(t, 4, consumed)
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string][]byte{
		"empty input":            {},
		"truncated short string": {0x83, 0x64, 0x6f},
		"truncated long length":  {0xb8},
		"overlong long length":   {0xb9, 0xff, 0xff},
		"truncated short list":   {0xc8, 0x83, 0x63},
		"truncated nested item":  {0xc3, 0x83, 0x64, 0x6f},
		"overlong long list":     {0xf9, 0xff, 0xff, 0x01},
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := rlp.Decode(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, rlp.ErrMalformed))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	items := []rlp.Item{
		rlp.StringItem(nil),
		rlp.StringItem([]byte{0x00}),
		rlp.StringItem([]byte("hello world")),
		rlp.StringItem(bytes.Repeat([]byte{0xab}, 300)),
		rlp.ListItem(),
		rlp.ListItem(
			rlp.UintItem(21000),
			rlp.StringItem([]byte("nested")),
			rlp.ListItem(rlp.UintItem(0), rlp.ListItem()),
		),
	}

	for _, item := range items {
		encoded := rlp.Encode(item)
		decoded, consumed, err := rlp.Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, len(encoded), consumed)
		assert.Equal(t, rlp.Encode(decoded), encoded)
	}
}

func TestBigIntAccessor(t *testing.T) {
	item, _, err := rlp.Decode([]byte{0x82, 0x01, 0x00})
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(256), item.BigInt())

	item, _, err = rlp.Decode([]byte{0x80})
	require.NoError(t, err)
	assert.Equal(t, 0, item.BigInt().Sign())
}
