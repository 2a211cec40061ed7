// Package metrics exposes the Prometheus instrumentation for the chat API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests by route template.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lumichat_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "code"},
	)

	// ChatExchangesTotal counts completed question/answer exchanges.
	ChatExchangesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lumichat_chat_exchanges_total",
			Help: "Total number of completed chat exchanges",
		},
	)

	// SnapshotSaveFailuresTotal counts snapshot flushes that failed and were
	// swallowed. The in-memory state stays ahead of disk until the next
	// successful save.
	SnapshotSaveFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lumichat_snapshot_save_failures_total",
			Help: "Total number of failed snapshot saves",
		},
	)
)
