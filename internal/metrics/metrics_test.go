package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMetrics(t *testing.T) {
	logger := zap.NewNop()
	m := New(logger)

	m.RecordRun("done")
	m.RecordRun("failed")
	m.RecordStage("generating", 2.4)
	m.RecordStage("synthesizing", 11.7)
	m.RecordTTSRequest("elevenlabs", true, 240)
	m.RecordTTSRequest("openai", false, 0)
	m.RecordScript(8)
	m.RecordArtifact(118.5)
}

func TestHealthHandler(t *testing.T) {
	h := NewHandler(nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.HealthHandler(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "synthetic-radio-host")
}
