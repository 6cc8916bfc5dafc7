package jobs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

var jobMutations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "jobs",
		Name:      "mutations_total",
		Help:      "Successful job create, update and delete operations",
	},
	[]string{"operation"},
)

func recordMutation(operation string) {
	jobMutations.WithLabelValues(operation).Inc()
}
