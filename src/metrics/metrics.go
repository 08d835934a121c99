package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type RecorderInterface interface {
	RecordCycle(durationSeconds float64)
	RecordTrade(side string, symbol string)
	RecordSkip(reason string)
	SetOpenPositions(count int)
}

// Recorder exposes engine counters on the status server's /metrics
// endpoint.
type Recorder struct {
	cycles        prometheus.Counter
	cycleDuration prometheus.Histogram
	trades        *prometheus.CounterVec
	skips         *prometheus.CounterVec
	openPositions prometheus.Gauge
}

func New() *Recorder {
	return &Recorder{
		cycles: promauto.NewCounter(prometheus.CounterOpts{
			Name: "signal_bot_cycles_total",
			Help: "Total number of completed polling cycles",
		}),
		cycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "signal_bot_cycle_duration_seconds",
			Help:    "Duration of a full polling cycle",
			Buckets: prometheus.DefBuckets,
		}),
		trades: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_bot_trades_total",
			Help: "Executed trades by side",
		}, []string{"side", "symbol"}),
		skips: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_bot_symbol_skips_total",
			Help: "Symbols skipped within a cycle, by reason",
		}, []string{"reason"}),
		openPositions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "signal_bot_open_positions",
			Help: "Number of currently open positions",
		}),
	}
}

func (r *Recorder) RecordCycle(durationSeconds float64) {
	r.cycles.Inc()
	r.cycleDuration.Observe(durationSeconds)
}

func (r *Recorder) RecordTrade(side string, symbol string) {
	r.trades.WithLabelValues(side, symbol).Inc()
}

func (r *Recorder) RecordSkip(reason string) {
	r.skips.WithLabelValues(reason).Inc()
}

func (r *Recorder) SetOpenPositions(count int) {
	r.openPositions.Set(float64(count))
}
