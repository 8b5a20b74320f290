package keys_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-signer/internal/api"
	"github/chapool/go-signer/internal/api/handlers/keys"
	"github/chapool/go-signer/internal/test"
)

func testKeyHex() string {
	return strings.Repeat("00", 31) + "01"
}

func TestImportListDeleteKey(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := keys.PostImportKeyPayload{
			Alias:      "cold-1",
			PrivateKey: testKeyHex(),
			Password:   "pw",
		}
		res := test.PerformRequest(t, s, "POST", "/api/v1/keys", payload, nil)
		require.Equal(t, http.StatusCreated, res.Result().StatusCode)
		// the stored key never appears in any response
		assert.NotContains(t, res.Body.String(), testKeyHex())

		res = test.PerformRequest(t, s, "GET", "/api/v1/keys", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var listBody keys.GetKeyListResponse
		test.ParseResponseBody(t, res, &listBody)
		require.Len(t, listBody.Keys, 1)
		assert.Equal(t, "cold-1", listBody.Keys[0].Alias)
		assert.Equal(t, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", listBody.Keys[0].Address)

		res = test.PerformRequest(t, s, "DELETE", "/api/v1/keys/cold-1", nil, nil)
		require.Equal(t, http.StatusNoContent, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "DELETE", "/api/v1/keys/cold-1", nil, nil)
		require.Equal(t, http.StatusNotFound, res.Result().StatusCode)
	})
}

func TestImportKeyValidation(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/keys", keys.PostImportKeyPayload{Alias: "x"}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "POST", "/api/v1/keys", keys.PostImportKeyPayload{
			Alias:      "x",
			PrivateKey: "not-hex",
			Password:   "pw",
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}
