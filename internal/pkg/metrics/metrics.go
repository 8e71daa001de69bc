// Package metrics defines and registers all custom Prometheus metrics for the
// restaurant order API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Collectors are registered with the default registry at package init via
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "restaurant"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "not_found", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successful customer registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registered users.",
	},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts newly created orders.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	},
)

// OrderTransitionsTotal counts accepted status transitions.
// Labels:
//   - status: the new order status (e.g. "preparing")
//   - role: the role of the actor that requested it
var OrderTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Total number of accepted order status transitions.",
	},
	[]string{"status", "role"},
)

// OrderTransitionsRejectedTotal counts refused transitions.
// Label:
//   - reason: "unknown_status", "not_found", "not_allowed" or "conflict"
var OrderTransitionsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_rejected_total",
		Help:      "Total number of rejected order status transitions.",
	},
	[]string{"reason"},
)

// ── Status event metrics ──────────────────────────────────────────────────────

// StatusEventsRecordedTotal counts transition events persisted to the log.
var StatusEventsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_events_recorded_total",
		Help:      "Total number of order status events written to the event log.",
	},
	[]string{"status"},
)

// StatusEventsErrorsTotal counts events that could not be recorded.
// Label:
//   - reason: "queue_full" or "insert_failed"
var StatusEventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_events_errors_total",
		Help:      "Total number of order status events that failed to be recorded.",
	},
	[]string{"reason"},
)

// StatusEventsQueueDepth tracks the number of events waiting in each worker channel.
var StatusEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "status_events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// StatusEventProcessingDuration measures dequeue-to-persistence latency.
var StatusEventProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "status_event_processing_duration_seconds",
		Help:      "Duration of status event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogCacheTotal counts catalog cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var CatalogCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_total",
		Help:      "Total number of catalog cache lookups, by result.",
	},
	[]string{"result"},
)
