// Package metrics exposes Prometheus metrics for wizard sessions.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder collects wizard metrics in its own registry. It implements
// stepper.Observer.
type Recorder struct {
	registry *prometheus.Registry

	transitionsTotal        *prometheus.CounterVec
	validationFailuresTotal *prometheus.CounterVec
	submitsTotal            *prometheus.CounterVec
	submitDuration          prometheus.Histogram
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		transitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stepform",
				Subsystem: "wizard",
				Name:      "transitions_total",
				Help:      "Total number of step transitions by direction",
			},
			[]string{"direction"},
		),

		validationFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stepform",
				Subsystem: "wizard",
				Name:      "validation_failures_total",
				Help:      "Total number of rejected advances by step index",
			},
			[]string{"step"},
		),

		submitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stepform",
				Subsystem: "submit",
				Name:      "total",
				Help:      "Total number of submits by result",
			},
			[]string{"result"},
		),

		submitDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "stepform",
				Subsystem: "submit",
				Name:      "duration_seconds",
				Help:      "Time from submit request to resolution in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
		),
	}

	r.registry.MustRegister(
		r.transitionsTotal,
		r.validationFailuresTotal,
		r.submitsTotal,
		r.submitDuration,
	)
	return r
}

// Registry returns the registry holding the wizard collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Advanced records a forward transition.
func (r *Recorder) Advanced(_, _ int) {
	r.transitionsTotal.WithLabelValues("forward").Inc()
}

// Retreated records a backward transition.
func (r *Recorder) Retreated(_, _ int) {
	r.transitionsTotal.WithLabelValues("back").Inc()
}

// ValidationFailed records a rejected advance.
func (r *Recorder) ValidationFailed(step int, _ error) {
	r.validationFailuresTotal.WithLabelValues(strconv.Itoa(step)).Inc()
}

// SubmitResolved records the outcome and duration of a submit.
func (r *Recorder) SubmitResolved(elapsed time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	r.submitsTotal.WithLabelValues(result).Inc()
	r.submitDuration.Observe(elapsed.Seconds())
}

// Serve exposes the registry on addr under /metrics until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	}
}
