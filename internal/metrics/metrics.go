package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "balzac",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	slotsComputed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "balzac",
			Name:      "slots_computed_total",
			Help:      "Count of availability computations.",
		},
	)

	slotsCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "balzac",
			Name:      "slots_cache_total",
			Help:      "Availability cache lookups by result.",
		},
		[]string{"result"},
	)

	rdvCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "balzac",
			Name:      "rdv_created_total",
			Help:      "Count of appointments created by source.",
		},
		[]string{"source"},
	)

	rdvConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "balzac",
			Name:      "rdv_conflicts_total",
			Help:      "Count of bookings rejected because the slot was taken.",
		},
	)

	pushSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "balzac",
			Name:      "push_sent_total",
			Help:      "Count of push notifications by outcome.",
		},
		[]string{"status"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, slotsComputed, slotsCache, rdvCreated, rdvConflicts, pushSent)
	})
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncSlotsComputed() {
	slotsComputed.Inc()
}

func IncSlotsCache(result string) {
	slotsCache.WithLabelValues(result).Inc()
}

func IncRdvCreated(source string) {
	rdvCreated.WithLabelValues(source).Inc()
}

func IncRdvConflict() {
	rdvConflicts.Inc()
}

func IncPushSent(status string) {
	pushSent.WithLabelValues(status).Inc()
}
