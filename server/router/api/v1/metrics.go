package v1

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reportsRegisteredCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "patitas",
		Name:      "reports_registered_total",
		Help:      "Number of pet reports successfully registered.",
	})
	searchesServedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "patitas",
		Name:      "searches_served_total",
		Help:      "Number of similarity searches served.",
	})
	alertsRaisedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "patitas",
		Name:      "alerts_raised_total",
		Help:      "Number of identity alerts raised at registration time.",
	})
	postersParsedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "patitas",
		Name:      "posters_parsed_total",
		Help:      "Number of posters digitized through OCR.",
	})
)
