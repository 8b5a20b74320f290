package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts codec and signing activity by transaction type and failure
// kind. Each instance owns its registry so repeated construction (tests) does
// not collide on the default one.
type Metrics struct {
	Registry *prometheus.Registry

	TransactionsDecoded *prometheus.CounterVec
	TransactionsSigned  *prometheus.CounterVec
	DecodeFailures      *prometheus.CounterVec
	SignFailures        *prometheus.CounterVec
}

// New builds a registry with the service counters.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		TransactionsDecoded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signer_transactions_decoded_total",
			Help: "Transactions decoded successfully, by transaction type.",
		}, []string{"type"}),
		TransactionsSigned: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signer_transactions_signed_total",
			Help: "Transactions signed successfully, by transaction type.",
		}, []string{"type"}),
		DecodeFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signer_decode_failures_total",
			Help: "Decode failures, by error kind.",
		}, []string{"kind"}),
		SignFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signer_sign_failures_total",
			Help: "Sign failures, by error kind.",
		}, []string{"kind"}),
	}
}
