package inflight

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FlightsStarted tracks fetches that reached the underlying transport
	FlightsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pokeapi_inflight_started_total",
			Help: "Total number of de-duplicated fetches started",
		},
	)

	// FlightsShared tracks callers that attached to a pending fetch
	FlightsShared = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pokeapi_inflight_shared_total",
			Help: "Total number of callers served by an already pending fetch",
		},
	)

	// WaitersDetached tracks callers that stopped waiting because their context ended
	WaitersDetached = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pokeapi_inflight_detached_total",
			Help: "Total number of callers that detached from a pending fetch",
		},
	)

	// FlightsAborted tracks fetches cancelled after their last caller detached
	FlightsAborted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pokeapi_inflight_aborted_total",
			Help: "Total number of fetches cancelled because no caller was waiting",
		},
	)

	// FlightsPending tracks fetches currently pending
	FlightsPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pokeapi_inflight_pending",
			Help: "Number of fetches currently pending",
		},
	)
)
