// Package metrics exposes the service's Prometheus counters.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the usecases see. Collector implements it against a
// registry, Nop discards everything.
type Recorder interface {
	RecordPayment(status string, took time.Duration)
	RecordLoanApplication(status string)
	RecordLoanReview(decision string)
	RecordRepayment(settled bool)
}

type Collector struct {
	payments        *prometheus.CounterVec
	paymentLatency  prometheus.Histogram
	loanApplication *prometheus.CounterVec
	loanReview      *prometheus.CounterVec
	repayments      prometheus.Counter
	loansSettled    prometheus.Counter
}

// NewCollector creates the collectors and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paylite_payments_total",
			Help: "Simulated payments by resulting status.",
		}, []string{"status"}),
		paymentLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "paylite_payment_processing_seconds",
			Help:    "Time spent processing a payment, simulated delay included.",
			Buckets: prometheus.DefBuckets,
		}),
		loanApplication: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paylite_loan_applications_total",
			Help: "Loan applications by initial status.",
		}, []string{"status"}),
		loanReview: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paylite_loan_reviews_total",
			Help: "Manual loan reviews by decision.",
		}, []string{"decision"}),
		repayments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "paylite_loan_repayments_total",
			Help: "Installments paid.",
		}),
		loansSettled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "paylite_loans_settled_total",
			Help: "Loans whose balance reached zero.",
		}),
	}

	reg.MustRegister(
		c.payments,
		c.paymentLatency,
		c.loanApplication,
		c.loanReview,
		c.repayments,
		c.loansSettled,
	)
	return c
}

func (c *Collector) RecordPayment(status string, took time.Duration) {
	c.payments.WithLabelValues(status).Inc()
	c.paymentLatency.Observe(took.Seconds())
}

func (c *Collector) RecordLoanApplication(status string) {
	c.loanApplication.WithLabelValues(status).Inc()
}

func (c *Collector) RecordLoanReview(decision string) {
	c.loanReview.WithLabelValues(decision).Inc()
}

// RecordRepayment counts one paid installment; settled marks the one that
// brought the balance to zero.
func (c *Collector) RecordRepayment(settled bool) {
	c.repayments.Inc()
	if settled {
		c.loansSettled.Inc()
	}
}

// Handler serves the registry for Prometheus scraping.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type Nop struct{}

func (Nop) RecordPayment(string, time.Duration) {}
func (Nop) RecordLoanApplication(string)        {}
func (Nop) RecordLoanReview(string)             {}
func (Nop) RecordRepayment(bool)                {}
