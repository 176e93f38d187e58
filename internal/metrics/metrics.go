package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Metrics holds every metric of the application.
type Metrics struct {
	logger *zap.Logger

	pipelineRuns  *prometheus.CounterVec
	ttsRequests   *prometheus.CounterVec
	ttsCharacters *prometheus.CounterVec

	stageDuration    *prometheus.HistogramVec
	scriptTurns      prometheus.Histogram
	artifactDuration prometheus.Histogram
}

// New creates and registers the application metrics.
func New(logger *zap.Logger) *Metrics {
	m := &Metrics{
		logger: logger,

		pipelineRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_runs_total",
				Help: "Total pipeline runs by final status",
			},
			[]string{"status"}, // done, failed
		),

		ttsRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tts_requests_total",
				Help: "Total text-to-speech requests by provider and status",
			},
			[]string{"provider", "status"}, // provider: elevenlabs, openai; status: success, failed
		),

		ttsCharacters: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tts_characters_total",
				Help: "Total characters sent for synthesis by provider",
			},
			[]string{"provider"},
		),

		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pipeline_stage_duration_seconds",
				Help:    "Duration of each pipeline stage in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"}, // generating, parsing, synthesizing, assembling
		),

		scriptTurns: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "script_turns",
				Help:    "Number of dialogue turns per parsed script",
				Buckets: []float64{2, 4, 6, 8, 10, 14, 18, 24, 32},
			},
		),

		artifactDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "artifact_duration_seconds",
				Help:    "Playback duration of assembled artifacts in seconds",
				Buckets: []float64{30, 60, 90, 120, 150, 180, 240, 300},
			},
		),
	}

	prometheus.MustRegister(
		m.pipelineRuns,
		m.ttsRequests,
		m.ttsCharacters,
		m.stageDuration,
		m.scriptTurns,
		m.artifactDuration,
	)

	return m
}

// RecordRun records the final status of a pipeline run.
func (m *Metrics) RecordRun(status string) {
	m.pipelineRuns.WithLabelValues(status).Inc()
	m.logger.Debug("run recorded", zap.String("status", status))
}

// RecordStage records the duration of one pipeline stage.
func (m *Metrics) RecordStage(stage string, seconds float64) {
	m.stageDuration.WithLabelValues(stage).Observe(seconds)
}

// RecordTTSRequest records one synthesis request.
func (m *Metrics) RecordTTSRequest(provider string, success bool, characters int) {
	status := "success"
	if !success {
		status = "failed"
	}
	m.ttsRequests.WithLabelValues(provider, status).Inc()
	m.ttsCharacters.WithLabelValues(provider).Add(float64(characters))
}

// RecordScript records the turn count of a parsed script.
func (m *Metrics) RecordScript(turns int) {
	m.scriptTurns.Observe(float64(turns))
}

// RecordArtifact records the playback duration of an assembled artifact.
func (m *Metrics) RecordArtifact(seconds float64) {
	m.artifactDuration.Observe(seconds)
}
