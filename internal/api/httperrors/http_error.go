package httperrors

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github/chapool/go-signer/internal/ethtx"
	"github/chapool/go-signer/internal/keystore"
	"github/chapool/go-signer/internal/rlp"
	"github/chapool/go-signer/internal/signer"
)

// Error type identifiers surfaced to clients.
const (
	TypeGeneric            = "generic"
	TypeMalformedRLP       = "malformed_rlp"
	TypeInvalidFormat      = "invalid_transaction_format"
	TypeUnsupportedType    = "unsupported_transaction_type"
	TypeInvalidPrivateKey  = "invalid_private_key"
	TypeSigningFailure     = "signing_failure"
	TypeKeyNotFound        = "key_not_found"
	TypeWrongPassword      = "wrong_password"
)

// HTTPError is the public error envelope. Detail echoes the offending raw
// input for manual inspection; it must never carry key material.
type HTTPError struct {
	Code   int    `json:"status"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// NewHTTPError builds a public error with the given status, type and title.
func NewHTTPError(code int, errType string, title string) *HTTPError {
	return &HTTPError{Code: code, Type: errType, Title: title}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTPError %d (%s): %s", e.Code, e.Type, e.Title)
}

// WithDetail returns a copy of e carrying detail.
func (e *HTTPError) WithDetail(detail string) *HTTPError {
	clone := *e
	clone.Detail = detail
	return &clone
}

// FromTaxonomy maps a codec or signing error to its public form. rawInput is
// echoed back in the detail; none of these faults are retryable so every
// mapping is a 4xx.
func FromTaxonomy(err error, rawInput string) *HTTPError {
	switch {
	case errors.Is(err, rlp.ErrMalformed):
		return NewHTTPError(http.StatusBadRequest, TypeMalformedRLP, "Input is not structurally valid RLP").WithDetail(rawInput)
	case errors.Is(err, ethtx.ErrInvalidFormat):
		return NewHTTPError(http.StatusBadRequest, TypeInvalidFormat, "Input does not match any supported transaction layout").WithDetail(rawInput)
	case errors.Is(err, ethtx.ErrUnsupportedType):
		return NewHTTPError(http.StatusBadRequest, TypeUnsupportedType, "Transaction type is not supported").WithDetail(rawInput)
	case errors.Is(err, signer.ErrInvalidPrivateKey):
		// Never echo anything for key faults.
		return NewHTTPError(http.StatusBadRequest, TypeInvalidPrivateKey, "Private key is invalid")
	case errors.Is(err, signer.ErrSigningFailure):
		return NewHTTPError(http.StatusUnprocessableEntity, TypeSigningFailure, "Signing failed")
	case errors.Is(err, keystore.ErrKeyNotFound):
		return NewHTTPError(http.StatusNotFound, TypeKeyNotFound, "No key stored under this alias")
	case errors.Is(err, keystore.ErrWrongPassword):
		return NewHTTPError(http.StatusUnauthorized, TypeWrongPassword, "Password does not match")
	default:
		return nil
	}
}
