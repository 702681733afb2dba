// Package status exposes playback metrics written by the frame driver and
// read concurrently by the status bar, HTTP and MCP surfaces.
package status

import "sync/atomic"

// Well-known metric keys
const (
	CounterFrames        = "frames"
	CounterHits          = "hits"
	CounterPlays         = "plays"
	CounterResets        = "resets"
	CounterDroppedBursts = "bursts_dropped"
	CounterCommands      = "commands"

	GaugeElapsed  = "elapsed"
	GaugeProgress = "progress"
	GaugeDuration = "duration"
	GaugeFrameDt  = "frame_dt"
)

// Registry groups counters and gauges
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[Gauge]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[Gauge](),
	}
}

// Snapshot flattens every metric into a map for JSON encoding
func (r *Registry) Snapshot() map[string]float64 {
	out := make(map[string]float64, r.Counters.Count()+r.Gauges.Count())
	r.Counters.Range(func(key string, c *atomic.Int64) {
		out[key] = float64(c.Load())
	})
	r.Gauges.Range(func(key string, g *Gauge) {
		out[key] = g.Get()
	})
	return out
}
