package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-signer/internal/api"
)

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// getReadyHandler reports whether the server can accept work. The service has
// no external dependencies, so a booted router is ready.
func getReadyHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, "Ready.")
	}
}
