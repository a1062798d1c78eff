package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionsCreated counts sessions by their initial call status.
	SessionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentorlink_sessions_created_total",
		Help: "Sessions created, labelled by initial call status.",
	}, []string{"status"})

	// Dispatches counts per-channel delivery attempts by outcome.
	Dispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentorlink_notification_dispatches_total",
		Help: "Notification delivery attempts, labelled by channel and outcome.",
	}, []string{"channel", "outcome"})

	// DispatchNoops counts dispatch invocations that found nothing to send.
	DispatchNoops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mentorlink_notification_dispatch_noops_total",
		Help: "Dispatch invocations skipped because both channels were already handled.",
	})

	// ChargesTotal counts billing attempts by outcome.
	ChargesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentorlink_charges_total",
		Help: "Session billing attempts, labelled by outcome.",
	}, []string{"outcome"})
)
