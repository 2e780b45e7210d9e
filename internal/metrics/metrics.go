package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation"
	OutcomeNotFound   = "not_found"
	OutcomeError      = "error"
)

var (
	resetRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "password_reset_requests_total",
			Help: "Forgot-password requests by outcome",
		},
		[]string{"outcome"},
	)

	credentialsIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "password_reset_issued_total",
			Help: "Temporary passwords persisted, by account collection",
		},
		[]string{"collection"},
	)

	mailSendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "password_reset_mail_duration_seconds",
			Help:    "Time spent handing the reset mail to the transport",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"result"},
	)
)

func RecordRequest(outcome string) {
	resetRequestsTotal.WithLabelValues(outcome).Inc()
}

func RecordIssued(collection string) {
	credentialsIssuedTotal.WithLabelValues(collection).Inc()
}

func RecordMailSend(start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	mailSendDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
