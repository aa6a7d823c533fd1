// Package metrics defines and registers all custom Prometheus metrics for the
// marketplace API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry via promauto at
// package load; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Account metrics ───────────────────────────────────────────────────────────

// AccountsRegisteredTotal counts new registrations.
// Label:
//   - role: "vendor" or "supplier"
var AccountsRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_registered_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// AccountsVerifiedTotal counts administrative approvals.
var AccountsVerifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_verified_total",
		Help:      "Total number of accounts approved by an administrator.",
	},
	[]string{"role"},
)

// AccountsRejectedTotal counts administrative rejections (hard deletes).
var AccountsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_rejected_total",
		Help:      "Total number of accounts rejected and removed.",
	},
	[]string{"role"},
)

// ── Grievance metrics ─────────────────────────────────────────────────────────

// GrievancesFiledTotal counts accepted grievance submissions.
// Label:
//   - posted_by: the filer's role
var GrievancesFiledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "grievances_filed_total",
		Help:      "Total number of grievances filed, by posting role.",
	},
	[]string{"posted_by"},
)

// AttachmentBytes observes the size of each encoded grievance attachment.
var AttachmentBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "attachment_bytes",
		Help:      "Size in bytes of grievance attachments before encoding.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8), // 1KiB .. 16MiB
	},
)
