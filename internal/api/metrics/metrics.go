// Package metrics defines all custom Prometheus metrics for the Featherback
// API. It is the single source of truth for metric names, labels, and help
// strings; metrics register themselves with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "featherback"

// --- Auth metrics ---

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "disabled", or "rejected" (unknown login and wrong
//     password are indistinguishable on purpose, so both count as rejected)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts signed JWTs handed out.
// Label:
//   - kind: "login", "signup", or "impersonation"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of JWTs issued, by issuance kind.",
	},
	[]string{"kind"},
)

// TokenVerificationsTotal counts JWT verification outcomes in the middleware.
// Label:
//   - result: "ok" or "invalid"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of JWT verifications, by result.",
	},
	[]string{"result"},
)

// PasswordHashDuration measures how long a single bcrypt hash takes. Useful
// for spotting cost-factor pressure under concurrent signups.
var PasswordHashDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of bcrypt password hashing.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// --- Notification metrics ---

// NotificationsPublishedTotal counts notification fan-out publishes.
// Label:
//   - result: "ok" or "error"
var NotificationsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_published_total",
		Help:      "Total number of notification fan-out publishes, by result.",
	},
	[]string{"result"},
)

// NotificationQueueDepth tracks notifications waiting in each fan-out worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each fan-out worker channel.",
	},
	[]string{"worker_id"},
)
