package server

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tradeforge/vela/internal/store"
	"github.com/tradeforge/vela/internal/types"
)

// MetricsSource is what the gauges read on every scrape.
type MetricsSource interface {
	StoppedAgents() int
	TotalAssets() float64
	TransactionsClosed() int
}

// Metrics holds the Prometheus metrics for the trading runtime. It also
// implements the orchestrator's tick observer. Sources feed the gauges at
// scrape time and can be added after construction, so the metrics can be
// wired before the orchestrators exist.
type Metrics struct {
	registry *prometheus.Registry
	sources  []MetricsSource

	TicksProcessed prometheus.Counter
	TicksDropped   prometheus.Counter
	OrdersPlaced   prometheus.Counter
	StoppedAgents  prometheus.GaugeFunc
	TotalAssets    prometheus.GaugeFunc
	ClosedTrades   prometheus.GaugeFunc
}

// NewMetrics registers the runtime metrics against a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		TicksProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vela_ticks_processed_total",
			Help: "Total trading ticks fully processed",
		}),
		TicksDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vela_ticks_dropped_total",
			Help: "Total ticks dropped because the previous tick was still running",
		}),
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vela_orders_placed_total",
			Help: "Total orders placed across all agents",
		}),
	}

	m.StoppedAgents = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "vela_agents_stopped",
		Help: "Agents whose stop-trading latch has fired",
	}, func() float64 {
		total := 0
		for _, source := range m.sources {
			total += source.StoppedAgents()
		}

		return float64(total)
	})

	m.TotalAssets = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "vela_total_assets",
		Help: "Combined agent assets valued at the last fetched price",
	}, func() float64 {
		total := 0.0
		for _, source := range m.sources {
			total += source.TotalAssets()
		}

		return total
	})

	m.ClosedTrades = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "vela_transactions_closed",
		Help: "Closed buy-to-sell round trips across all agents",
	}, func() float64 {
		total := 0
		for _, source := range m.sources {
			total += source.TransactionsClosed()
		}

		return float64(total)
	})

	m.registry.MustRegister(
		m.TicksProcessed,
		m.TicksDropped,
		m.OrdersPlaced,
		m.StoppedAgents,
		m.TotalAssets,
		m.ClosedTrades,
	)

	return m
}

// AddSources registers gauge sources. Not safe to call concurrently with
// scrapes; wire everything up before the server starts.
func (m *Metrics) AddSources(sources ...MetricsSource) {
	m.sources = append(m.sources, sources...)
}

// TickProcessed implements the orchestrator observer.
func (m *Metrics) TickProcessed() {
	m.TicksProcessed.Inc()
}

// TickDropped implements the orchestrator observer.
func (m *Metrics) TickDropped() {
	m.TicksDropped.Inc()
}

// WrapRecorder decorates a recorder so every placed order bumps the orders
// counter. Agents record an order exactly once, at placement.
func (m *Metrics) WrapRecorder(recorder store.Recorder) store.Recorder {
	return &countingRecorder{Recorder: recorder, orders: m.OrdersPlaced}
}

type countingRecorder struct {
	store.Recorder
	orders prometheus.Counter
}

func (r *countingRecorder) RecordOrder(ctx context.Context, agentID string, order types.Order) error {
	r.orders.Inc()

	return r.Recorder.RecordOrder(ctx, agentID, order)
}
