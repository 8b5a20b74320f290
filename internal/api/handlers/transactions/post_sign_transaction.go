package transactions

import (
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github/chapool/go-signer/internal/api"
	"github/chapool/go-signer/internal/api/httperrors"
	"github/chapool/go-signer/internal/ethtx"
	"github/chapool/go-signer/internal/util"
)

// PostSignTransactionPayload carries the raw transaction hex plus either an
// inline private key or a keystore alias and password.
type PostSignTransactionPayload struct {
	Raw        string `json:"raw"`
	PrivateKey string `json:"privateKey,omitempty"`
	Alias      string `json:"alias,omitempty"`
	Password   string `json:"password,omitempty"`
}

// SignTransactionResponse is the signed wire form plus its identifier.
type SignTransactionResponse struct {
	Signed string `json:"signed"`
	TxHash string `json:"txHash"`
	Type   string `json:"type"`
}

func PostSignTransactionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Transactions.POST("/sign", postSignTransactionHandler(s))
}

func postSignTransactionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body PostSignTransactionPayload
		if err := c.Bind(&body); err != nil {
			return echo.ErrBadRequest
		}
		if strings.TrimSpace(body.Raw) == "" {
			return httperrors.NewHTTPError(http.StatusBadRequest, httperrors.TypeGeneric, "Field raw is required")
		}

		keyHex := body.PrivateKey
		if keyHex == "" {
			if body.Alias == "" {
				return httperrors.NewHTTPError(http.StatusBadRequest, httperrors.TypeGeneric, "Either privateKey or alias is required")
			}

			loaded, err := s.Keystore.Load(ctx, body.Alias, body.Password)
			if err != nil {
				log.Debug().Str("alias", body.Alias).Err(err).Msg("Failed to load key")
				if httpErr := httperrors.FromTaxonomy(err, ""); httpErr != nil {
					return httpErr
				}
				return err
			}
			keyHex = loaded
		}

		privateKey, err := hex.DecodeString(strings.TrimPrefix(keyHex, "0x"))
		if err != nil {
			return httperrors.NewHTTPError(http.StatusBadRequest, httperrors.TypeInvalidPrivateKey, "Private key is not valid hex")
		}
		// Key material lives only for the duration of this request.
		defer func() {
			for i := range privateKey {
				privateKey[i] = 0
			}
		}()

		tx, err := ethtx.Decode(body.Raw)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to decode transaction for signing")
			s.Metrics.DecodeFailures.WithLabelValues(errorKind(err)).Inc()

			if httpErr := httperrors.FromTaxonomy(err, body.Raw); httpErr != nil {
				return httpErr
			}
			return err
		}

		result, err := s.Signer.SignTransaction(ctx, tx, privateKey)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to sign transaction")
			s.Metrics.SignFailures.WithLabelValues(errorKind(err)).Inc()

			if httpErr := httperrors.FromTaxonomy(err, body.Raw); httpErr != nil {
				return httpErr
			}
			return err
		}

		s.Metrics.TransactionsSigned.WithLabelValues(tx.Type.String()).Inc()

		return c.JSON(http.StatusOK, &SignTransactionResponse{
			Signed: result.Hex,
			TxHash: result.TxHash.Hex(),
			Type:   tx.Type.String(),
		})
	}
}
