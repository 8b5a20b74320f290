package keys

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-signer/internal/api"
	"github/chapool/go-signer/internal/api/httperrors"
	"github/chapool/go-signer/internal/util"
)

func DeleteKeyRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Keys.DELETE("/:alias", deleteKeyHandler(s))
}

func deleteKeyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		alias := c.Param("alias")
		if err := s.Keystore.Delete(ctx, alias); err != nil {
			log.Debug().Str("alias", alias).Err(err).Msg("Failed to delete key")
			if httpErr := httperrors.FromTaxonomy(err, alias); httpErr != nil {
				return httpErr
			}
			return err
		}

		return c.NoContent(http.StatusNoContent)
	}
}
