// Package metrics exposes prometheus counters for uploads and questions.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thywilljoshua/docchat/internal/doc"
	"github.com/thywilljoshua/docchat/internal/extract"
	"github.com/thywilljoshua/docchat/internal/session"
)

type Metrics struct {
	uploads   *prometheus.CounterVec
	questions *prometheus.CounterVec
	genFails  prometheus.Counter
}

// New registers the counters on reg. Passing prometheus.DefaultRegisterer
// makes them visible on the default /metrics handler.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docchat_uploads_total",
			Help: "Document uploads by resulting mode and outcome.",
		}, []string{"mode", "result"}),
		questions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docchat_questions_total",
			Help: "Questions by answering strategy.",
		}, []string{"strategy"}),
		genFails: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "docchat_generation_failures_total",
			Help: "Failed language model calls.",
		}),
	}
	reg.MustRegister(m.uploads, m.questions, m.genFails)
	return m
}

var _ session.Observer = (*Metrics)(nil)

func (m *Metrics) Upload(mode doc.Mode, err error) {
	m.uploads.WithLabelValues(mode.String(), uploadResult(err)).Inc()
}

func (m *Metrics) Question(s session.Strategy) {
	m.questions.WithLabelValues(string(s)).Inc()
}

func (m *Metrics) GenerationFailed() { m.genFails.Inc() }

func uploadResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, extract.ErrUnsupportedType):
		return "unsupported"
	case errors.Is(err, extract.ErrExtractionFailed):
		return "extraction_failed"
	}
	return "error"
}
