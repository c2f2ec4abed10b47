package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	DispatchRecipientsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_recipients_total",
		Help: "Dispatch attempts per campaign and outcome",
	}, []string{"campaign", "status"})

	DispatchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dispatch_duration_seconds",
		Help:    "Duration of one campaign dispatch",
		Buckets: prometheus.DefBuckets,
	}, []string{"campaign"})

	PendingDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pending_notifications",
		Help: "Notifications currently queued for retrieval",
	})

	PendingEvictions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pending_evictions_total",
		Help: "Oldest-drop evictions caused by the per-user queue bound",
	})

	LedgerSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "history_ledger_entries",
		Help: "Entries currently retained in the history ledger",
	})

	LedgerCompactions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "history_compactions_total",
		Help: "Half-drop compactions performed by the ledger",
	})

	BridgeDeliveries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_deliveries_total",
		Help: "Best-effort mirror deliveries per bridge and outcome",
	}, []string{"bridge", "status"})
)

// MustRegister registers the engine metrics.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		DispatchRecipientsTotal,
		DispatchDuration,
		PendingDepth,
		PendingEvictions,
		LedgerSize,
		LedgerCompactions,
		BridgeDeliveries,
	)
}

// StartServer runs an HTTP server exposing /metrics.
func StartServer(ctx context.Context, logger zerolog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	shutdownCtx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-ctx.Done():
		case <-shutdownCtx.Done():
		}
		shutdownTimeout, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer timeoutCancel()
		if err := srv.Shutdown(shutdownTimeout); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics: graceful shutdown failed")
		}
	}()

	go func() {
		logger.Info().Str("addr", addr).Msg("metrics: server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics: server stopped")
		}
		cancel()
	}()
}

// ObserveDispatch records one campaign round.
func ObserveDispatch(campaign string, succeeded, failed int, start time.Time) {
	if campaign == "" {
		campaign = "unknown"
	}
	DispatchRecipientsTotal.WithLabelValues(campaign, "success").Add(float64(succeeded))
	DispatchRecipientsTotal.WithLabelValues(campaign, "error").Add(float64(failed))
	DispatchDuration.WithLabelValues(campaign).Observe(time.Since(start).Seconds())
}

// ObserveBridgeDelivery records one mirror delivery attempt.
func ObserveBridgeDelivery(bridge string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	BridgeDeliveries.WithLabelValues(bridge, status).Inc()
}
