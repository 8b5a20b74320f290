package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/go-signer/internal/config"
	"github/chapool/go-signer/internal/keystore"
	"github/chapool/go-signer/internal/metrics"
	"github/chapool/go-signer/internal/signer"
)

// SignerService interface for transaction signing operations
type SignerService = signer.Service

// KeystoreService interface for encrypted key storage
type KeystoreService = keystore.Service

// Router groups the route tree by concern.
type Router struct {
	Routes              []*echo.Route
	Root                *echo.Group
	Management          *echo.Group
	APIV1Transactions   *echo.Group
	APIV1Keys           *echo.Group
}

// Server owns the echo instance and the services the handlers dispatch to.
// All services are constructed explicitly; there is no hidden shared state.
type Server struct {
	Config   config.Server
	Echo     *echo.Echo
	Router   *Router
	Metrics  *metrics.Metrics
	Signer   SignerService
	Keystore KeystoreService
}

// NewServer wires the service components for the given configuration.
func NewServer(cfg config.Server) (*Server, error) {
	keystoreService, err := keystore.NewService(cfg.Keystore.Dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init keystore")
	}

	return &Server{
		Config:   cfg,
		Metrics:  metrics.New(),
		Signer:   signer.NewService(),
		Keystore: keystoreService,
	}, nil
}

// Start begins listening on the configured address, blocking until shutdown.
func (s *Server) Start() error {
	if s.Echo == nil {
		return errors.New("server is not initialized")
	}

	log.Info().Str("address", s.Config.Echo.ListenAddress).Msg("Starting server")

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server terminated unexpectedly")
	}

	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down server")
	return s.Echo.Shutdown(ctx)
}
