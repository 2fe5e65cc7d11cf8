// Package metrics defines the custom Prometheus metrics for the TaskMate API.
// Metrics register with the default registry on import; HTTP request metrics
// come from the echoprometheus middleware wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskmate"

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts created tasks.
// Label:
//   - priority: the priority the task was created with
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by priority.",
	},
	[]string{"priority"},
)

// TasksMutatedTotal counts successful updates and deletes.
// Label:
//   - operation: "update" or "delete"
var TasksMutatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_mutated_total",
		Help:      "Total number of task updates and deletes.",
	},
	[]string{"operation"},
)

// TaskAccessDeniedTotal counts requests rejected because the caller does not
// own the task.
var TaskAccessDeniedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_access_denied_total",
		Help:      "Total number of task requests rejected for ownership.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
