package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics covers the push-payment flow end to end.
type PaymentMetrics struct {
	PaymentsInitiatedTotal   prometheus.CounterVec
	PaymentsInitiatedAmount  prometheus.CounterVec
	PaymentsCompletedTotal   prometheus.CounterVec
	PaymentsCompletedAmount  prometheus.CounterVec
	PaymentsFailedTotal      prometheus.CounterVec
	PurchasesFannedOutTotal  prometheus.Counter
	StkPushDuration          prometheus.Histogram
	CallbackDuration         prometheus.HistogramVec
	StalePendingTransactions prometheus.Gauge
	PaymentErrorsTotal       prometheus.CounterVec
}

func NewPaymentMetrics() *PaymentMetrics {
	return &PaymentMetrics{
		PaymentsInitiatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_initiated_total",
				Help: "STK push submissions accepted by the gateway",
			},
			[]string{"environment"},
		),

		PaymentsInitiatedAmount: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_initiated_amount_total",
				Help: "Total amount of initiated payments",
			},
			[]string{"environment"},
		),

		PaymentsCompletedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_completed_total",
				Help: "Transactions confirmed by a successful gateway callback",
			},
			[]string{"environment"},
		),

		PaymentsCompletedAmount: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_completed_amount_total",
				Help: "Total amount confirmed by successful callbacks",
			},
			[]string{"environment"},
		),

		PaymentsFailedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_failed_total",
				Help: "Transactions failed by the gateway callback, by result code",
			},
			[]string{"environment", "result_code"},
		),

		PurchasesFannedOutTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "purchases_fanned_out_total",
				Help: "Purchase entitlement records created from completed transactions",
			},
		),

		StkPushDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stk_push_duration_seconds",
				Help:    "Time spent on the token exchange plus push submission",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 8),
			},
		),

		CallbackDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "callback_processing_duration_seconds",
				Help:    "Time spent handling one gateway callback",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"outcome"},
		),

		StalePendingTransactions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "stale_pending_transactions",
				Help: "Pending transactions older than the monitor threshold (orphaned checkouts)",
			},
		),

		PaymentErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_errors_total",
				Help: "Errors in the payment flow by type",
			},
			[]string{"error_type"},
		),
	}
}

func (m *PaymentMetrics) RecordInitiated(environment string, amount float64) {
	m.PaymentsInitiatedTotal.WithLabelValues(environment).Inc()
	m.PaymentsInitiatedAmount.WithLabelValues(environment).Add(amount)
}

func (m *PaymentMetrics) RecordCompleted(environment string, amount float64, purchases int) {
	m.PaymentsCompletedTotal.WithLabelValues(environment).Inc()
	m.PaymentsCompletedAmount.WithLabelValues(environment).Add(amount)
	m.PurchasesFannedOutTotal.Add(float64(purchases))
}

func (m *PaymentMetrics) RecordFailed(environment, resultCode string) {
	m.PaymentsFailedTotal.WithLabelValues(environment, resultCode).Inc()
}

func (m *PaymentMetrics) RecordCallbackDuration(outcome string, seconds float64) {
	m.CallbackDuration.WithLabelValues(outcome).Observe(seconds)
}

func (m *PaymentMetrics) RecordError(errorType string) {
	m.PaymentErrorsTotal.WithLabelValues(errorType).Inc()
}
