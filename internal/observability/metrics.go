package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreOperationsTotal counts entity store operations by entity and operation.
	StoreOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prism_store_operations_total",
		Help: "Total number of entity store operations",
	}, []string{"entity", "operation"})

	// StoreOperationErrors counts failed entity store operations by error code.
	StoreOperationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prism_store_operation_errors_total",
		Help: "Total number of failed entity store operations by error code",
	}, []string{"entity", "operation", "code"})

	// CreditsTransferred counts credits moved by transfer kind (grant, spend, trade).
	CreditsTransferred = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prism_credits_transferred_total",
		Help: "Total credits moved through the ledger by kind",
	}, []string{"kind"})

	// ActiveSessions is the gauge of live sessions in the registry.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "prism_sessions_active",
		Help: "Number of live sessions in the registry",
	})

	// HubConnections is the gauge of registered realtime connections.
	HubConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "prism_hub_connections",
		Help: "Number of registered realtime connections",
	})

	// HubEventsPublished counts events published through the hub by kind.
	HubEventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prism_hub_events_published_total",
		Help: "Total realtime events published by kind",
	}, []string{"kind"})

	// HubBackpressureDrops counts events dropped due to backpressure by reason.
	HubBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prism_hub_backpressure_drops_total",
		Help: "Total realtime events dropped due to backpressure",
	}, []string{"reason"})
)
