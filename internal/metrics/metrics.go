// Package metrics holds the Prometheus collectors of the marketplace core
// and the operational HTTP surface that exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var BookingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "marketplace",
	Subsystem: "booking",
	Name:      "transitions_total",
	Help:      "Booking state transitions by target status and outcome.",
}, []string{"to", "outcome"})

var BookingCodeCollisions = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "marketplace",
	Subsystem: "booking",
	Name:      "code_collisions_total",
	Help:      "Booking code collisions retried with a fresh suffix.",
})

var OTPIssued = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "marketplace",
	Subsystem: "otp",
	Name:      "issued_total",
	Help:      "One-time passcodes issued.",
})

var OTPVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "marketplace",
	Subsystem: "otp",
	Name:      "verifications_total",
	Help:      "OTP verification attempts by result.",
}, []string{"result"})

var OTPPurged = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "marketplace",
	Subsystem: "otp",
	Name:      "purged_total",
	Help:      "Stale OTP sessions removed by the purge job.",
})

var LedgerTransactions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "marketplace",
	Subsystem: "ledger",
	Name:      "transactions_total",
	Help:      "Wallet transactions by type and outcome.",
}, []string{"type", "outcome"})

var NotificationsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "marketplace",
	Subsystem: "notify",
	Name:      "dropped_total",
	Help:      "Notifications that failed to deliver, by sink.",
}, []string{"sink"})

var RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "marketplace",
	Subsystem: "grpc",
	Name:      "requests_total",
	Help:      "Handled gRPC requests by method and status code.",
}, []string{"method", "code"})

// Outcome returns the label value for an operation result.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
