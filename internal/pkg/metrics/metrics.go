package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CheckIns counts successful check-ins by resulting status and work mode.
	CheckIns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_checkins_total",
		Help: "Number of successful check-ins.",
	}, []string{"status", "work_mode"})

	// CheckOuts counts successful check-outs by final status.
	CheckOuts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_checkouts_total",
		Help: "Number of successful check-outs.",
	}, []string{"status"})

	// NotifierDropped counts events that could not be delivered.
	NotifierDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_dropped_total",
		Help: "Number of notification events that failed to publish.",
	})
)

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
