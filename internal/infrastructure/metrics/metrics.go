package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Assistant API Metrics
var (
	// Request counters per assistant operation
	AssistantRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assist",
			Subsystem: "assistant_api",
			Name:      "requests_total",
			Help:      "Total number of assistant operations",
		},
		[]string{"operation", "status"},
	)

	// Guardrail rejections
	GuardrailBlocksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assist",
			Subsystem: "assistant_api",
			Name:      "guardrail_blocks_total",
			Help:      "Total inputs rejected by the guardrail validator",
		},
		[]string{"field", "reason"},
	)

	// Provider errors
	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assist",
			Subsystem: "assistant_api",
			Name:      "provider_errors_total",
			Help:      "Total model provider call failures",
		},
		[]string{"operation"},
	)

	// Fallback responses served instead of provider output
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assist",
			Subsystem: "assistant_api",
			Name:      "fallbacks_total",
			Help:      "Total localized fallback responses served",
		},
		[]string{"operation", "locale"},
	)

	// Conversations
	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "assist",
			Subsystem: "assistant_api",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)

	ConversationsEvictedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "assist",
			Subsystem: "assistant_api",
			Name:      "conversations_evicted_total",
			Help:      "Total idle conversations reclaimed by the TTL sweep",
		},
	)

	// Provider call duration
	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "assist",
			Subsystem: "assistant_api",
			Name:      "provider_duration_seconds",
			Help:      "Model provider call duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"operation", "outcome"},
	)
)
