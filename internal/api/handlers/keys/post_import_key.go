package keys

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github/chapool/go-signer/internal/api"
	"github/chapool/go-signer/internal/api/httperrors"
	"github/chapool/go-signer/internal/util"
)

// PostImportKeyPayload carries a private key to encrypt into the keystore.
type PostImportKeyPayload struct {
	Alias      string `json:"alias"`
	PrivateKey string `json:"privateKey"`
	Password   string `json:"password"`
}

func PostImportKeyRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Keys.POST("", postImportKeyHandler(s))
}

func postImportKeyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body PostImportKeyPayload
		if err := c.Bind(&body); err != nil {
			return echo.ErrBadRequest
		}
		if strings.TrimSpace(body.Alias) == "" || body.PrivateKey == "" || body.Password == "" {
			return httperrors.NewHTTPError(http.StatusBadRequest, httperrors.TypeGeneric, "Fields alias, privateKey and password are required")
		}

		key, err := s.Keystore.Store(ctx, body.Alias, body.PrivateKey, body.Password)
		if err != nil {
			// The raw error may describe the key; log and surface only the alias.
			log.Debug().Str("alias", body.Alias).Err(err).Msg("Failed to store key")
			return httperrors.NewHTTPError(http.StatusBadRequest, httperrors.TypeGeneric, "Failed to store key").WithDetail(body.Alias)
		}

		return c.JSON(http.StatusCreated, key)
	}
}
