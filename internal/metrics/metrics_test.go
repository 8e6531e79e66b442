package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/thywilljoshua/docchat/internal/doc"
	"github.com/thywilljoshua/docchat/internal/extract"
	"github.com/thywilljoshua/docchat/internal/session"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Upload(doc.ModePDF, nil)
	m.Upload(doc.ModePDF, nil)
	m.Upload(doc.ModeNone, extract.ErrUnsupportedType)
	m.Upload(doc.ModeNone, &extract.ExtractionError{Method: extract.MethodOCR, Cause: errors.New("x")})
	m.Question(session.StrategyChat)
	m.Question(session.StrategyNoContent)
	m.GenerationFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.uploads.WithLabelValues("pdf", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploads.WithLabelValues("none", "unsupported")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploads.WithLabelValues("none", "extraction_failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.questions.WithLabelValues("chat")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.questions.WithLabelValues("no_content")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.genFails))
}
