// Package metrics exposes prometheus counters for auth, contact and archive outcomes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeSuccess            = "success"
	OutcomeValidation         = "validation_error"
	OutcomeDuplicate          = "duplicate"
	OutcomeForbidden          = "forbidden"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeInvalidRole        = "invalid_role"
	OutcomeError              = "error"
)

// AuthAttempts counts register and login attempts.
var AuthAttempts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "softveda_auth_attempts_total",
		Help: "Total number of register and login attempts by role and outcome",
	},
	[]string{"op", "role", "outcome"},
)

// ContactSubmissions counts contact form submissions.
var ContactSubmissions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "softveda_contact_submissions_total",
		Help: "Total number of contact form submissions by outcome",
	},
	[]string{"outcome"},
)

// ArchiveJobs counts contact archive uploads.
var ArchiveJobs = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "softveda_archive_jobs_total",
		Help: "Total number of contact archive jobs by outcome",
	},
	[]string{"outcome"},
)

// RegisterMetrics registers the package counters with reg.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(AuthAttempts)
	reg.MustRegister(ContactSubmissions)
	reg.MustRegister(ArchiveJobs)
}

// NewRegistry returns a registry with the package counters plus the Go and
// process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	RegisterMetrics(reg)
	return reg
}

// Handler serves the exposition format for reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

func RecordAuthAttempt(op, role, outcome string) {
	AuthAttempts.WithLabelValues(op, role, outcome).Inc()
}

func RecordContactSubmission(outcome string) {
	ContactSubmissions.WithLabelValues(outcome).Inc()
}

func RecordArchiveJob(outcome string) {
	ArchiveJobs.WithLabelValues(outcome).Inc()
}
