package router

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"github/chapool/go-signer/internal/api"
	"github/chapool/go-signer/internal/api/handlers/common"
	"github/chapool/go-signer/internal/api/handlers/keys"
	"github/chapool/go-signer/internal/api/handlers/transactions"
	"github/chapool/go-signer/internal/api/httperrors"
	"github/chapool/go-signer/internal/config"
	"github/chapool/go-signer/internal/util"
)

// Init builds the echo instance, middleware chain and route tree.
func Init(s *api.Server) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(s.Config)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  config.ModuleName,
		Registerer: s.Metrics.Registry,
	}))

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: s.Metrics.Registry,
	}))

	s.Echo = e
	s.Router = &api.Router{
		Root:              e.Group(""),
		Management:        e.Group("/-"),
		APIV1Transactions: e.Group("/api/v1/transactions"),
		APIV1Keys:         e.Group("/api/v1/keys"),
	}

	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		transactions.PostDecodeTransactionRoute(s),
		transactions.PostSignTransactionRoute(s),
		keys.GetKeyListRoute(s),
		keys.PostImportKeyRoute(s),
		keys.DeleteKeyRoute(s),
	}
}

// requestLogger attaches a request-scoped zerolog logger to the context.
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			logger := log.With().
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Logger()

			c.SetRequest(req.WithContext(util.WithLogger(req.Context(), logger)))

			return next(c)
		}
	}
}

// errorHandler renders HTTPError envelopes and hides internal details per
// config.
func errorHandler(cfg config.Server) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpError *httperrors.HTTPError
		switch typed := err.(type) {
		case *httperrors.HTTPError:
			httpError = typed
		case *echo.HTTPError:
			httpError = httperrors.NewHTTPError(typed.Code, httperrors.TypeGeneric, http.StatusText(typed.Code))
		default:
			title := http.StatusText(http.StatusInternalServerError)
			if !cfg.Echo.HideInternalServerErrorDetails {
				title = err.Error()
			}
			httpError = httperrors.NewHTTPError(http.StatusInternalServerError, httperrors.TypeGeneric, title)
		}

		if jsonErr := c.JSON(httpError.Code, httpError); jsonErr != nil {
			log.Error().Err(jsonErr).Msg("Failed to write error response")
		}
	}
}
