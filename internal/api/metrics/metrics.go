// Package metrics defines the custom Prometheus metrics of the employee admin
// API. It is the single source of truth for metric names, labels, and help
// strings.
//
// Build a Metrics value once at startup with New and pass it to the services
// and middleware that record into it. Tests pass a throwaway registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "employee_admin"

// Metrics groups every collector recorded by the application.
type Metrics struct {
	// LoginsTotal counts login attempts.
	// Label:
	//   - result: "success", "invalid", "invalid_credentials", "rate_limited" or "error"
	LoginsTotal *prometheus.CounterVec

	// RegistrationsTotal counts administrator registrations.
	// Label:
	//   - result: "success", "invalid", "duplicate" or "error"
	RegistrationsTotal *prometheus.CounterVec

	// AuthFailuresTotal counts rejected requests on protected routes.
	// Label:
	//   - reason: "no_token", "bad_format", "missing_token", "expired", "invalid", "other"
	AuthFailuresTotal *prometheus.CounterVec

	// EmployeeOperationsTotal counts employee operations that reached the store.
	// Labels:
	//   - operation: "create", "list", "get", "update", "delete"
	//   - result: "success", "not_found", "conflict" or "error"
	EmployeeOperationsTotal *prometheus.CounterVec
}

// New creates all collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LoginsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_logins_total",
				Help:      "Total number of login attempts, by result.",
			},
			[]string{"result"},
		),
		RegistrationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_registrations_total",
				Help:      "Total number of administrator registrations, by result.",
			},
			[]string{"result"},
		),
		AuthFailuresTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_failures_total",
				Help:      "Total number of requests rejected by token verification, by reason.",
			},
			[]string{"reason"},
		),
		EmployeeOperationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "employee_operations_total",
				Help:      "Total number of employee operations, by operation and result.",
			},
			[]string{"operation", "result"},
		),
	}
}

// NewNop returns Metrics registered against a private registry; used by tests
// and tools that do not expose /metrics.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
