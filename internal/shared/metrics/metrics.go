package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Collectors agrupa as métricas do bet-placer.
// Implementa coupon.Recorder e os callbacks do placer.Service.
type Collectors struct {
	Submissions      *prometheus.CounterVec
	Duration         *prometheus.HistogramVec
	ValidationErrors *prometheus.CounterVec
	ReportErrors     *prometheus.CounterVec
}

// NewCollectors cria e registra as métricas no registry informado
func NewCollectors(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bet_submissions_total",
			Help: "Tentativas de envio de cupom por resultado",
		}, []string{"outcome"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bet_submission_duration_seconds",
			Help:    "Latência do POST de aposta",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
		}, []string{"outcome"}),
		ValidationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bet_validation_errors_total",
			Help: "Apostas rejeitadas localmente antes do envio",
		}, []string{"kind"}),
		ReportErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bet_report_errors_total",
			Help: "Falhas ao publicar/persistir recibos",
		}, []string{"reporter"}),
	}
	reg.MustRegister(c.Submissions, c.Duration, c.ValidationErrors, c.ReportErrors)
	return c
}

func (c *Collectors) ObserveSubmission(outcome string, elapsed time.Duration) {
	c.Submissions.WithLabelValues(outcome).Inc()
	c.Duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (c *Collectors) ObserveValidationError(kind string) {
	c.ValidationErrors.WithLabelValues(kind).Inc()
}

func (c *Collectors) ObserveReportError(reporter string) {
	c.ReportErrors.WithLabelValues(reporter).Inc()
}

// Push envia as métricas para o Pushgateway ao fim da execução.
// Processo one-shot não vive o suficiente para ser raspado em /metrics.
func Push(ctx context.Context, url, job string, g prometheus.Gatherer) error {
	return push.New(url, job).Gatherer(g).PushContext(ctx)
}
