// Package metrics exposes Prometheus instrumentation for ledger operations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry          *prometheus.Registry
	operationsTotal   *prometheus.CounterVec
	operationsFailed  *prometheus.CounterVec
	operationDuration prometheus.Histogram
	balanceTotal      prometheus.Gauge
	loanApplications  *prometheus.CounterVec
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		operationsTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Total number of ledger operations",
		}, []string{"operation"}),
		operationsFailed: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_operations_failed_total",
			Help: "Total number of failed ledger operations",
		}, []string{"operation"}),
		operationDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_seconds",
			Help:    "Time taken to execute a ledger operation",
			Buckets: prometheus.DefBuckets,
		}),
		balanceTotal: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "bank_balance_total_cents",
			Help: "Sum of all account balances in cents",
		}),
		loanApplications: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "loan_applications_total",
			Help: "Loan applications by final status",
		}, []string{"status"}),
	}
}

// RecordOperation counts one ledger operation and its outcome. Safe on a nil
// receiver so services can run without a collector in tests.
func (c *Collector) RecordOperation(operation string, duration time.Duration, err error) {
	if c == nil {
		return
	}
	c.operationsTotal.WithLabelValues(operation).Inc()
	if err != nil {
		c.operationsFailed.WithLabelValues(operation).Inc()
	}
	c.operationDuration.Observe(duration.Seconds())
}

func (c *Collector) SetBalanceTotal(cents int64) {
	if c == nil {
		return
	}
	c.balanceTotal.Set(float64(cents))
}

func (c *Collector) RecordLoanApplication(status string) {
	if c == nil {
		return
	}
	c.loanApplications.WithLabelValues(status).Inc()
}

// Handler serves the /metrics endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
