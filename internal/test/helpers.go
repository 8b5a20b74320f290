package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github/chapool/go-signer/internal/api"
	"github/chapool/go-signer/internal/api/router"
	"github/chapool/go-signer/internal/config"
)

// WithTestServer spins up a fully routed server over a throwaway keystore
// directory and hands it to closure.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Logger.Level = zerolog.Disabled
	cfg.Keystore.Dir = t.TempDir()

	WithTestServerConfigurable(t, cfg, closure)
}

// WithTestServerConfigurable is WithTestServer with a caller-supplied config.
func WithTestServerConfigurable(t *testing.T, cfg config.Server, closure func(s *api.Server)) {
	t.Helper()

	s, err := api.NewServer(cfg)
	require.NoError(t, err)

	router.Init(s)

	closure(s)
}

// PerformRequest runs an in-memory request against the server's router and
// returns the recorded response. body, when non-nil, is sent as JSON.
func PerformRequest(t *testing.T, s *api.Server, method string, path string, body interface{}, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	return rec
}

// ParseResponseBody unmarshals the recorded JSON response into target.
func ParseResponseBody(t *testing.T, rec *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target))
}
