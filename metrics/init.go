package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSimulationMetrics() {
	r.TicksTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "hypergraph_ticks_total",
			Help: "Total number of simulation ticks run",
		},
	)

	r.PassesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "hypergraph_relaxation_passes_total",
			Help: "Total number of relaxation passes run",
		},
	)

	r.TickDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hypergraph_tick_duration_seconds",
			Help:    "Duration of one simulation tick in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5},
		},
	)

	r.SetupsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "hypergraph_setups_total",
			Help: "Total number of simulation setups",
		},
	)

	r.ConstraintDrift = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "hypergraph_constraint_drift",
			Help: "Largest |x²+y²−w²+1| over all node centers and boundary points after the last tick",
		},
	)

	r.MeanEdgeLength = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "hypergraph_mean_edge_length",
			Help: "Mean hyperbolic length of the edges after the last tick",
		},
	)

	r.SimulationRunning = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "hypergraph_simulation_running",
			Help: "Whether the simulation is running (1) or idle (0)",
		},
	)

	r.LastTickTimestamp = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "hypergraph_last_tick_timestamp_seconds",
			Help: "Unix time of the last simulation tick",
		},
	)
}

func (r *Registry) initGraphMetrics() {
	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "hypergraph_nodes_total",
			Help: "Number of nodes in the graph",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "hypergraph_edges_total",
			Help: "Number of edges in the graph",
		},
	)

	r.DragEventsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "hypergraph_drag_events_total",
			Help: "Total number of pointer events applied to the graph",
		},
		[]string{"phase"},
	)
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "hypergraph_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hypergraph_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
}
