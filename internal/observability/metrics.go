package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Capture metrics
	recordingsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voice_clone_recordings_started_total",
		Help: "Total number of capture sessions started",
	})

	recordingsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voice_clone_recordings_completed_total",
		Help: "Total number of capture sessions finalized into a clip",
	})

	recordingsDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voice_clone_recordings_discarded_total",
		Help: "Total number of clips discarded by restarting capture",
	})

	recordedBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voice_clone_recorded_bytes_total",
		Help: "Total audio bytes captured from input devices",
	})

	recordingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "voice_clone_recording_duration_seconds",
		Help:    "Duration of finalized recordings in seconds",
		Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
	})

	// Clone upload metrics
	cloneRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_clone_clone_requests_total",
		Help: "Total number of voice clone upload requests",
	}, []string{"status"})

	cloneLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "voice_clone_clone_latency_seconds",
		Help:    "Voice clone upload latency in seconds",
		Buckets: []float64{0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
	})

	// Synthesis metrics
	synthesisRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_clone_synthesis_requests_total",
		Help: "Total number of speech synthesis requests",
	}, []string{"status"})

	synthesisLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "voice_clone_synthesis_latency_seconds",
		Help:    "Speech synthesis latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
	})

	synthesizedBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voice_clone_synthesized_bytes_total",
		Help: "Total audio bytes received from synthesis responses",
	})

	// Precondition metrics
	guardRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_clone_guard_rejections_total",
		Help: "Operations rejected locally before any network request",
	}, []string{"operation", "reason"})

	// Error metrics
	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_clone_errors_total",
		Help: "Total number of errors",
	}, []string{"type", "component"})
)

// RecordRecordingStarted records the start of a capture session
func RecordRecordingStarted() {
	recordingsStarted.Inc()
}

// RecordRecordingCompleted records a finalized recording
func RecordRecordingCompleted(duration time.Duration) {
	recordingsCompleted.Inc()
	recordingDuration.Observe(duration.Seconds())
}

// RecordRecordingDiscarded records a clip thrown away by a capture restart
func RecordRecordingDiscarded() {
	recordingsDiscarded.Inc()
}

// RecordCapturedBytes records audio bytes received from an input device
func RecordCapturedBytes(n int) {
	recordedBytes.Add(float64(n))
}

// RecordCloneRequest records the outcome and latency of a clone upload
func RecordCloneRequest(success bool, latency time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	cloneRequests.WithLabelValues(status).Inc()
	cloneLatency.Observe(latency.Seconds())
}

// RecordSynthesisRequest records the outcome and latency of a synthesis call
func RecordSynthesisRequest(success bool, latency time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	synthesisRequests.WithLabelValues(status).Inc()
	synthesisLatency.Observe(latency.Seconds())
}

// RecordSynthesizedBytes records audio bytes returned by synthesis
func RecordSynthesizedBytes(n int) {
	synthesizedBytes.Add(float64(n))
}

// RecordGuardRejection records an operation short-circuited by a precondition
func RecordGuardRejection(operation, reason string) {
	guardRejections.WithLabelValues(operation, reason).Inc()
}

// RecordError records an error
func RecordError(errorType, component string) {
	errorsTotal.WithLabelValues(errorType, component).Inc()
}
