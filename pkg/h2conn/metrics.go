package h2conn

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/albertbausili/h2conn/internal/stream"
)

var (
	streamsAddedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "h2conn_streams_added_total",
			Help: "Total number of streams registered with a connection.",
		},
		[]string{"role"},
	)

	streamsRemovedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "h2conn_streams_removed_total",
			Help: "Total number of streams unlinked from a connection.",
		},
		[]string{"role"},
	)

	streamsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "h2conn_streams_active",
			Help: "Current number of streams in an active state.",
		},
		[]string{"role"},
	)

	priorityRestructuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "h2conn_priority_restructures_total",
			Help: "Total number of PRIORITY updates that required subtree hoisting.",
		},
		[]string{"role"},
	)
)

// metricsListener records Prometheus collectors for stream lifecycle
// events, in the same promauto-vector style as the pack's HTTP
// middleware metrics.
type metricsListener struct {
	role string
}

func newMetricsListener(server bool) *metricsListener {
	role := "client"
	if server {
		role = "server"
	}
	return &metricsListener{role: role}
}

func (m *metricsListener) StreamAdded(*stream.Stream) {
	streamsAddedTotal.WithLabelValues(m.role).Inc()
}

func (m *metricsListener) StreamActive(*stream.Stream) {
	streamsActive.WithLabelValues(m.role).Inc()
}

func (m *metricsListener) StreamHalfClosed(*stream.Stream) {}

func (m *metricsListener) StreamInactive(*stream.Stream) {
	streamsActive.WithLabelValues(m.role).Dec()
}

func (m *metricsListener) StreamRemoved(*stream.Stream) {
	streamsRemovedTotal.WithLabelValues(m.role).Inc()
}

func (m *metricsListener) StreamPriorityChanged(_, _ *stream.Stream) {}

func (m *metricsListener) StreamPrioritySubtreeChanged(_, _ *stream.Stream) {
	priorityRestructuresTotal.WithLabelValues(m.role).Inc()
}
