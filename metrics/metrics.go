package metrics

import (
	"time"
)

// Drag phases recorded by RecordDrag.
const (
	DragBegin    = "begin"
	DragContinue = "continue"
)

// RecordTick records one simulation tick
func (r *Registry) RecordTick(passes int, duration time.Duration, meanEdgeLength, drift float64) {
	r.TicksTotal.Inc()
	r.PassesTotal.Add(float64(passes))
	r.TickDuration.Observe(duration.Seconds())
	r.MeanEdgeLength.Set(meanEdgeLength)
	r.ConstraintDrift.Set(drift)
	r.LastTickTimestamp.SetToCurrentTime()
}

// RecordSetup records a simulation setup
func (r *Registry) RecordSetup() {
	r.SetupsTotal.Inc()
	r.SimulationRunning.Set(1)
}

// RecordDrag records a pointer event of the given phase
func (r *Registry) RecordDrag(phase string) {
	r.DragEventsTotal.WithLabelValues(phase).Inc()
}

// SetGraphSize updates the node and edge gauges
func (r *Registry) SetGraphSize(nodes, edges int) {
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
