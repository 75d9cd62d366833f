package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// DispatchTotal counts dispatches by terminal outcome
	DispatchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "app_scheme_dispatch_total",
		Help: "The total number of app:// dispatches by outcome",
	},
		[]string{"outcome"},
	)

	// HandlerDuration records how long handlers take to produce a page
	HandlerDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "app_scheme_handler_duration_seconds",
		Help: "Time spent inside app:// page handlers",
	})

	// PagesRegistered is the number of authorities in the registry
	PagesRegistered = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "app_scheme_pages_registered",
		Help: "The number of registered app:// page handlers",
	})
)

func init() {
	prometheus.MustRegister(DispatchTotal)
	prometheus.MustRegister(HandlerDuration)
	prometheus.MustRegister(PagesRegistered)
}
