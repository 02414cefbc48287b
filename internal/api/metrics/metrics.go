// Package metrics defines and registers all custom Prometheus metrics for
// the course enrollment API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "coursehub"

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheOpsTotal counts course cache lookups.
// Labels:
//   - key: "detail" or "list"
//   - result: "hit" or "miss"
var CacheOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_ops_total",
		Help:      "Total number of course cache lookups, by key kind and result.",
	},
	[]string{"key", "result"},
)

// CacheInvalidationsTotal counts cache invalidations triggered by writes.
var CacheInvalidationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Total number of course cache invalidations.",
	},
)

// CacheErrorsTotal counts swallowed cache store failures.
// Label:
//   - op: "get", "set", or "invalidate"
var CacheErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_errors_total",
		Help:      "Total number of cache store failures (degraded to direct reads).",
	},
	[]string{"op"},
)

// ── Enrollment metrics ────────────────────────────────────────────────────────

// EnrollmentsCreatedTotal counts successful enrollments.
var EnrollmentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_created_total",
		Help:      "Total number of enrollments created.",
	},
)

// EnrollmentsDuplicateTotal counts enroll attempts rejected by the store's
// uniqueness constraint.
var EnrollmentsDuplicateTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_duplicate_total",
		Help:      "Total number of enroll attempts rejected as duplicates.",
	},
)

// ── Notification job metrics ──────────────────────────────────────────────────

// NotificationJobsTotal counts background notification job outcomes.
// Label:
//   - result: "sent", "skipped" (idempotency key present), "missing"
//     (enrollment deleted between enqueue and execution), or "error"
var NotificationJobsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_jobs_total",
		Help:      "Total number of notification job executions, by outcome.",
	},
	[]string{"result"},
)

// NotificationEnqueueDropsTotal counts jobs the queue could not accept.
var NotificationEnqueueDropsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_enqueue_drops_total",
		Help:      "Total number of notification jobs dropped at enqueue time.",
	},
)

// QueueDepth tracks the number of jobs waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var QueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "queue_depth",
		Help:      "Current number of jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// JobDuration measures how long a notification job takes end-to-end.
var JobDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "job_duration_seconds",
		Help:      "Duration of notification job processing from dequeue to completion.",
		Buckets:   prometheus.DefBuckets,
	},
)
