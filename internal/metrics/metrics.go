// Package metrics defines the prometheus collectors for Haneul.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for QueriesTotal.
const (
	OutcomeResult = "result"
	OutcomeError  = "error"
)

// Status labels for upstream request counters.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

var (
	// QueriesTotal counts streamed query pipelines by terminal event type.
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "haneul_queries_total",
		Help: "Streamed query pipelines by terminal outcome.",
	}, []string{"outcome"})

	// NWSRequestsTotal counts National Weather Service calls.
	NWSRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "haneul_nws_requests_total",
		Help: "NWS API requests by operation and status.",
	}, []string{"operation", "status"})

	// LLMRequestsTotal counts LLM backend calls.
	LLMRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "haneul_llm_requests_total",
		Help: "LLM backend requests by provider and status.",
	}, []string{"provider", "status"})

	// LLMRequestDuration observes LLM backend latency.
	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "haneul_llm_request_duration_seconds",
		Help:    "LLM backend request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})
)
