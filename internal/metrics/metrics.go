package metrics

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Predictions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "surgecast_predictions_total",
		Help: "Total engagement predictions computed or served",
	})
	PredictionErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "surgecast_prediction_errors_total",
		Help: "Total prediction requests rejected or failed",
	})
	PredictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "surgecast_prediction_duration_seconds",
		Help:    "Engagement prediction duration seconds",
		Buckets: prometheus.DefBuckets,
	})
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "surgecast_cache_hits_total",
		Help: "Prediction cache hits",
	})
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "surgecast_cache_misses_total",
		Help: "Prediction cache misses",
	})
	ViralityScores = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "surgecast_virality_score",
		Help:    "Distribution of computed virality scores",
		Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})
	CommandRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "surgecast_command_runs_total",
		Help: "Total CLI command runs",
	}, []string{"command"})
	CommandErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "surgecast_command_errors_total",
		Help: "Total CLI command errors",
	}, []string{"command"})
)

func init() {
	prometheus.MustRegister(Predictions, PredictionErrors, PredictionDuration,
		CacheHits, CacheMisses, ViralityScores, CommandRuns, CommandErrors)
}

// StartServer starts a metrics HTTP server on addr (e.g., ":9090").
func StartServer(addr string) {
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}
	if addr == "" {
		return
	}
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() { _ = http.ListenAndServe(addr, nil) }()
}

// ObservePredictionDuration records one prediction duration.
func ObservePredictionDuration(start time.Time) {
	PredictionDuration.Observe(time.Since(start).Seconds())
}

// IncCommandRun increments the run counter for a CLI command.
func IncCommandRun(cmd string) { CommandRuns.WithLabelValues(cmd).Inc() }

// IncCommandError increments the error counter for a CLI command.
func IncCommandError(cmd string) { CommandErrors.WithLabelValues(cmd).Inc() }
