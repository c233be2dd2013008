package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	paymentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_total",
			Help: "Payments by status (initiated/paid/manual).",
		},
		[]string{"status"},
	)

	gatewayCallLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_call_latency_ms",
			Help:    "Checkout gateway call latency in milliseconds.",
			Buckets: []float64{25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
		},
		[]string{"call", "success"},
	)
)

func init() {
	register(paymentsTotal, gatewayCallLatencyMs)
}

func IncPayment(status string) {
	paymentsTotal.WithLabelValues(status).Inc()
}

func ObserveGatewayCall(call string, err error, elapsed time.Duration) {
	success := "true"
	if err != nil {
		success = "false"
	}
	gatewayCallLatencyMs.WithLabelValues(call, success).Observe(float64(elapsed.Milliseconds()))
}
