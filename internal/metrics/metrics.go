// Package metrics exposes Prometheus metrics for report invocations.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ReportsTotal counts /report invocations by outcome: "ok" or an error kind.
	ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reportbot",
			Name:      "reports_total",
			Help:      "Report invocations by outcome",
		},
		[]string{"status"},
	)

	// ReportDuration measures one invocation end to end.
	ReportDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "reportbot",
			Name:      "report_duration_seconds",
			Help:      "Time to read, aggregate, render and send one report",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	// ReportRecords holds the row count of the last successful report.
	ReportRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "reportbot",
			Name:      "report_records",
			Help:      "Rows read from the requests table by the last successful report",
		},
	)

	// SettingsReloads counts config file reloads by status: "ok" or "error".
	SettingsReloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reportbot",
			Name:      "settings_reloads_total",
			Help:      "Config file reloads by outcome",
		},
		[]string{"status"},
	)
)

var registerOnce sync.Once

// Register registers the report metrics with the default registry. Safe to
// call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ReportsTotal, ReportDuration, ReportRecords, SettingsReloads)
	})
}

// ObserveReport records one invocation. status is "ok" or an error kind.
func ObserveReport(status string, duration time.Duration, records int) {
	ReportsTotal.WithLabelValues(status).Inc()
	ReportDuration.Observe(duration.Seconds())
	if status == "ok" {
		ReportRecords.Set(float64(records))
	}
}

// ObserveSettingsReload records one settings reload attempt.
func ObserveSettingsReload(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	SettingsReloads.WithLabelValues(status).Inc()
}

// Handler returns the /metrics mux.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Serve runs the metrics endpoint on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("metrics server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
