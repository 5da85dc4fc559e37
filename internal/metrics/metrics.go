// Package metrics exposes Prometheus counters for reminder runs.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"content_plan_bot/internal/model"
)

// Collector records reminder outcomes on its own registry.
type Collector struct {
	registry     *prometheus.Registry
	runsTotal    *prometheus.CounterVec
	rowsTotal    *prometheus.CounterVec
	rowsSkipped  prometheus.Counter
	chunksSent   prometheus.Counter
	runDuration  prometheus.Histogram
	lastRunEpoch prometheus.Gauge
}

// New creates a Collector with all metrics registered.
func New() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_runs_total",
			Help: "Reminder runs by trigger and outcome",
		},
		[]string{"trigger", "outcome"},
	)
	c.rowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_rows_total",
			Help: "Plan rows reported, by deadline bucket",
		},
		[]string{"bucket"},
	)
	c.rowsSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reminder_rows_skipped_total",
		Help: "Plan rows skipped because of an unparsable date",
	})
	c.chunksSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reminder_chunks_sent_total",
		Help: "Digest messages delivered to chat",
	})
	c.runDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "reminder_run_duration_seconds",
		Help:    "Duration of a reminder run",
		Buckets: prometheus.DefBuckets,
	})
	c.lastRunEpoch = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "reminder_last_run_timestamp_seconds",
		Help: "Unix time of the last finished run",
	})

	c.registry.MustRegister(c.runsTotal, c.rowsTotal, c.rowsSkipped, c.chunksSent, c.runDuration, c.lastRunEpoch)
	return c
}

// Registry returns the registry backing the collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveRun records a finished run.
func (c *Collector) ObserveRun(run model.Run) {
	c.runsTotal.WithLabelValues(string(run.Trigger), string(run.Outcome)).Inc()
	c.runDuration.Observe(run.FinishedAt.Sub(run.StartedAt).Seconds())
	c.lastRunEpoch.Set(float64(run.FinishedAt.Unix()))
}

// ObserveDigest records bucket sizes and skipped rows of a built digest.
func (c *Collector) ObserveDigest(d model.Digest) {
	for bucket, n := range d.Counts {
		c.rowsTotal.WithLabelValues(bucket.String()).Add(float64(n))
	}
	c.rowsSkipped.Add(float64(d.Skipped))
}

// ChunkSent records one delivered message.
func (c *Collector) ChunkSent() {
	c.chunksSent.Inc()
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string, log *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("metrics listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown metrics server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	}
}
