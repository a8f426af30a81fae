// Package metrics holds the prometheus collectors for application intake.
package metrics

import (
	"net/http"

	"github.com/job-intake/backend/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ResultAccepted labels a submission that produced a success response.
const ResultAccepted = "accepted"

var (
	ApplicationsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "applications_received_total",
			Help: "Application submissions by result (accepted or rejection code)",
		},
		[]string{"result"},
	)

	FilesStaged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "application_files_staged_total",
			Help: "Files staged from accepted submissions, by form field",
		},
		[]string{"field"},
	)

	FileBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "application_file_bytes",
			Help:    "Size of staged files in bytes",
			Buckets: prometheus.ExponentialBuckets(16<<10, 4, 8),
		},
		[]string{"field"},
	)

	StagingFilesCleaned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "staging_files_cleaned_total",
			Help: "Staged files removed by the staging janitor",
		},
	)
)

// ObserveAccepted records an accepted submission and its files.
func ObserveAccepted(files map[string][]models.UploadedFile) {
	ApplicationsReceived.WithLabelValues(ResultAccepted).Inc()
	for field, list := range files {
		for _, f := range list {
			FilesStaged.WithLabelValues(field).Inc()
			FileBytes.WithLabelValues(field).Observe(float64(f.Size))
		}
	}
}

// ObserveRejected records a rejected submission under its error code.
func ObserveRejected(code string) {
	ApplicationsReceived.WithLabelValues(code).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
