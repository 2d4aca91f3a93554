package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OutboxPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_outbox_published_total",
			Help: "Total number of delivery events published from the outbox",
		},
		[]string{"event_type"},
	)

	OutboxFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_outbox_failed_total",
			Help: "Total number of failed delivery event publish attempts",
		},
		[]string{"event_type"},
	)

	OutboxPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "delivery_outbox_pending",
			Help: "Number of delivery events waiting in the outbox",
		},
	)
)
