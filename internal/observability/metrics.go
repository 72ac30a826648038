package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	shakeCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lazytimer",
		Name:      "shake_events_total",
		Help:      "Debounced shake events detected from the accelerometer.",
	})

	toggleCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lazytimer",
		Name:      "toggles_total",
		Help:      "Start/pause toggles that changed the timer, by input source.",
	}, []string{"source"})

	alertCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lazytimer",
		Name:      "alerts_total",
		Help:      "One-minute notifications sent.",
	})

	snapshotCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lazytimer",
		Name:      "snapshots_total",
		Help:      "Timer snapshots written or restored.",
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(shakeCounter, toggleCounter, alertCounter, snapshotCounter)
}

// RecordShake counts a debounced shake.
func RecordShake() {
	shakeCounter.Inc()
}

// RecordToggle counts a start/pause toggle from source.
func RecordToggle(source string) {
	toggleCounter.WithLabelValues(source).Inc()
}

// RecordAlert counts a sent notification.
func RecordAlert() {
	alertCounter.Inc()
}

// RecordSnapshot counts a snapshot save or restore.
func RecordSnapshot(op string) {
	snapshotCounter.WithLabelValues(op).Inc()
}

// Serve exposes /metrics on addr until ctx ends.
func Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listening", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
