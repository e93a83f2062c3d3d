package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusCollector implements the engine's MetricsRecorder on top of
// prometheus. Registered once at startup via promauto.
type PrometheusCollector struct {
	// Gauges
	scenesTotal   prometheus.Gauge
	overlaysTotal prometheus.Gauge
	tracksTotal   prometheus.Gauge

	// Counters
	sceneSwitchesTotal  prometheus.Counter
	reconcileDropsTotal *prometheus.CounterVec

	// Per-track meter level
	meterLevel *prometheus.GaugeVec
}

func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{
		scenesTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "castdeck_scenes_total",
			Help: "Number of configured scenes",
		}),

		overlaysTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "castdeck_overlays_total",
			Help: "Number of configured overlays",
		}),

		tracksTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "castdeck_audio_tracks_total",
			Help: "Number of mixer tracks",
		}),

		sceneSwitchesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "castdeck_scene_switches_total",
			Help: "Total number of completed scene activations",
		}),

		reconcileDropsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "castdeck_reconcile_dropped_entries_total",
			Help: "Malformed persisted entries dropped during reconciliation",
		}, []string{"collection"}),

		meterLevel: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "castdeck_audio_meter_level",
			Help: "Current audio meter level per track (0-100)",
		}, []string{"track"}),
	}
}

func (c *PrometheusCollector) SceneSwitched() {
	c.sceneSwitchesTotal.Inc()
}

func (c *PrometheusCollector) ReconcileDropped(collection string) {
	c.reconcileDropsTotal.WithLabelValues(collection).Inc()
}

func (c *PrometheusCollector) ActiveCounts(scenes, overlays, tracks int) {
	c.scenesTotal.Set(float64(scenes))
	c.overlaysTotal.Set(float64(overlays))
	c.tracksTotal.Set(float64(tracks))
}

func (c *PrometheusCollector) MeterLevel(trackID string, level int) {
	c.meterLevel.WithLabelValues(trackID).Set(float64(level))
}
