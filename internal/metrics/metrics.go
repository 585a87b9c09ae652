// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpgradesInitiated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_upgrades_initiated_total",
			Help: "Total number of pending payment transactions created",
		},
		[]string{"tier"},
	)

	UpgradesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_upgrades_completed_total",
			Help: "Total number of upgrades activated after an accepted reference",
		},
		[]string{"tier", "verifier"},
	)

	VerificationsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_verifications_rejected_total",
			Help: "Total number of payment references rejected by the verifier",
		},
		[]string{"verifier"},
	)

	WorkflowErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_workflow_errors_total",
			Help: "Total number of failed workflow operations",
		},
		[]string{"operation", "error_code"},
	)

	TransactionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "billing_transactions_expired_total",
			Help: "Total number of pending transactions moved to expired",
		},
	)

	EventsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "billing_upgrade_events_published_total",
			Help: "Total number of upgrade events relayed to subscribers",
		},
	)

	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "billing_operation_duration_seconds",
			Help:    "Duration of workflow operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)
