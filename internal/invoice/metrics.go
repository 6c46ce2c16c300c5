package invoice

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	documentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoice_documents_total",
		Help: "Total number of invoice documents generated, by rent type and outcome",
	}, []string{"rent_type", "outcome"})

	paymentCodeFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invoice_paycode_failures_total",
		Help: "Total number of invoices rendered without a payment code because encoding failed",
	})

	renderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "invoice_render_duration_seconds",
		Help:    "Time spent calculating and rendering an invoice",
		Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"rent_type"})
)
