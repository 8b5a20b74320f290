package transactions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github/chapool/go-signer/internal/api"
	"github/chapool/go-signer/internal/api/httperrors"
	"github/chapool/go-signer/internal/ethtx"
	"github/chapool/go-signer/internal/util"
)

// PostDecodeTransactionPayload carries the raw transaction hex to decode.
type PostDecodeTransactionPayload struct {
	Raw string `json:"raw"`
}

func PostDecodeTransactionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Transactions.POST("/decode", postDecodeTransactionHandler(s))
}

func postDecodeTransactionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body PostDecodeTransactionPayload
		if err := c.Bind(&body); err != nil {
			return echo.ErrBadRequest
		}
		if strings.TrimSpace(body.Raw) == "" {
			return httperrors.NewHTTPError(http.StatusBadRequest, httperrors.TypeGeneric, "Field raw is required")
		}

		tx, err := ethtx.Decode(body.Raw)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to decode transaction")
			s.Metrics.DecodeFailures.WithLabelValues(errorKind(err)).Inc()

			if httpErr := httperrors.FromTaxonomy(err, body.Raw); httpErr != nil {
				return httpErr
			}
			return err
		}

		s.Metrics.TransactionsDecoded.WithLabelValues(tx.Type.String()).Inc()

		return c.JSON(http.StatusOK, newTransactionResponse(tx))
	}
}
