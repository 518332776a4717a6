// Package metrics exposes Prometheus counters for the relay's message flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InboundMessages counts webhook messages by kind (text, audio, other).
	InboundMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voicerelay_inbound_messages_total",
			Help: "Inbound platform messages by kind.",
		},
		[]string{"kind"},
	)

	// PipelineOutcomes counts terminal voice-pipeline states.
	PipelineOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voicerelay_voice_pipeline_outcomes_total",
			Help: "Voice pipeline runs by terminal outcome.",
		},
		[]string{"outcome"},
	)

	// OutboundSends counts deliveries to the platform and the bot backend.
	OutboundSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voicerelay_outbound_sends_total",
			Help: "Outbound sends by target and result.",
		},
		[]string{"target", "result"},
	)

	// QueueRejections counts tasks dropped because the worker queue was full.
	QueueRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voicerelay_queue_rejections_total",
			Help: "Tasks rejected by a saturated worker queue.",
		},
	)
)
