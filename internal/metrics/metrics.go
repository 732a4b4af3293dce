// Package metrics expõe as métricas Prometheus da API. Todos os métodos aceitam
// receiver nil, então usecases e testes podem rodar sem métricas.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/goal-tracker-api/pkg/middleware"
)

const namespace = "goal_tracker"

// Origens de um cálculo de forecast
const (
	SourcePreview = "preview"
	SourceSave    = "save"
	SourceRead    = "read"
	SourceRecalc  = "recalc"
	SourceReport  = "report"
)

type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	forecasts     *prometheus.CounterVec
	scenarioDrift prometheus.Counter

	recalcRuns     *prometheus.CounterVec
	recalcDuration prometheus.Histogram

	pipelineTotal    prometheus.Gauge
	pipelineWeighted prometheus.Gauge
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requisições HTTP por rota e status.",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latência das requisições HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		forecasts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forecast_calculations_total",
			Help:      "Execuções do motor de forecast por origem.",
		}, []string{"source"}),
		scenarioDrift: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scenario_output_drift_total",
			Help:      "Cenários cujos outputs salvos divergiam do recálculo.",
		}),
		recalcRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scenario_recalc_runs_total",
			Help:      "Execuções do job de recálculo de cenários.",
		}, []string{"result"}),
		recalcDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scenario_recalc_duration_seconds",
			Help:      "Duração do job de recálculo de cenários.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
		pipelineTotal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_total_value",
			Help:      "ACV total das oportunidades abertas no último cálculo de pipeline.",
		}),
		pipelineWeighted: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_weighted_value",
			Help:      "ACV ponderado por probabilidade no último cálculo de pipeline.",
		}),
	}
}

// Handler serve o endpoint de scrape
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Instrument mede a rota usando o padrão registrado (ex: /v1/scenarios/:id), não o path real
func (m *Metrics) Instrument(method, route string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := middleware.NewStatusWriter(w)
		start := time.Now()

		next.ServeHTTP(sw, r)

		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(sw.Status())).Inc()
	})
}

func (m *Metrics) ObserveForecast(source string) {
	if m == nil {
		return
	}
	m.forecasts.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveDrift() {
	if m == nil {
		return
	}
	m.scenarioDrift.Inc()
}

func (m *Metrics) ObserveRecalc(elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	result := "success"
	if err != nil {
		result = "error"
	}

	m.recalcRuns.WithLabelValues(result).Inc()
	m.recalcDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) SetPipelineValue(total, weighted decimal.Decimal) {
	if m == nil {
		return
	}
	m.pipelineTotal.Set(total.InexactFloat64())
	m.pipelineWeighted.Set(weighted.InexactFloat64())
}
