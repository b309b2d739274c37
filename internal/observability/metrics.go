package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chronolock_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "code", "method"},
	)

	HoldsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chronolock_holds_created_total",
			Help: "Total holds successfully created",
		},
	)

	HoldConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chronolock_hold_conflicts_total",
			Help: "Total hold attempts rejected because the slot was not open",
		},
	)

	HoldsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chronolock_holds_expired_total",
			Help: "Total holds released after their payment window elapsed",
		},
	)

	Confirmations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chronolock_confirmations_total",
			Help: "Total holds confirmed into bookings",
		},
	)

	CalendarSyncFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chronolock_calendar_sync_failures_total",
			Help: "Total confirmed bookings whose calendar event creation failed",
		},
	)

	RateLimitExceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chronolock_rate_limit_exceeded_total",
			Help: "Total requests rejected by the rate limiter",
		},
	)
)
