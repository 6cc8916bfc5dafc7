package identity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

var identityOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "identity",
		Name:      "operations_total",
		Help:      "Registrations and logins by result",
	},
	[]string{"operation", "result"},
)

func recordIdentityOperation(operation, result string) {
	identityOperations.WithLabelValues(operation, result).Inc()
}
