package keys

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-signer/internal/api"
	"github/chapool/go-signer/internal/keystore"
	"github/chapool/go-signer/internal/util"
)

// GetKeyListResponse lists stored key metadata, never key material.
type GetKeyListResponse struct {
	Keys []keystore.Key `json:"keys"`
}

func GetKeyListRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Keys.GET("", getKeyListHandler(s))
}

func getKeyListHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		keyList, err := s.Keystore.List(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to list keys")
			return err
		}

		return c.JSON(http.StatusOK, &GetKeyListResponse{Keys: keyList})
	}
}
