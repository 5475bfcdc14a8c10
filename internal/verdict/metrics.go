package verdict

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	verdictComputations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verdict_computations_total",
		Help: "Verdict computations by source path.",
	}, []string{"source"})

	sessionPersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "verdict_session_persist_failures_total",
		Help: "Compare session writes that failed.",
	})
)
