package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// contactOperationsTotal counts contact operations by outcome.
	contactOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_operations_total",
			Help: "Contact operations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	notificationFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_notification_failures_total",
			Help: "Notifications that could not be delivered",
		},
	)
)

func observe(operation string, err error) {
	contactOperationsTotal.WithLabelValues(operation, outcomeOf(err)).Inc()
}
