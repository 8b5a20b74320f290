package common

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-signer/internal/api"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// getHealthyHandler verifies the keystore directory is reachable. Guarded by
// the management secret when one is configured.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if secret := s.Config.Management.Secret; secret != "" {
			provided := c.QueryParam("mgmt-secret")
			if subtle.ConstantTimeCompare([]byte(secret), []byte(provided)) != 1 {
				return echo.ErrUnauthorized
			}
		}

		if _, err := s.Keystore.List(c.Request().Context()); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "keystore unavailable")
		}

		return c.String(http.StatusOK, "Healthy.")
	}
}
