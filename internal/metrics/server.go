package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pagecluster/internal/usecase/health"
)

// HealthChecker reports component health for /healthz.
type HealthChecker interface {
	Check(ctx context.Context) health.Report
}

// NewRouter builds the metrics router: /metrics from reg and /healthz from hc.
func NewRouter(reg *prometheus.Registry, hc HealthChecker) http.Handler {
	hm := newHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(hm.middleware)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		report := hc.Check(r.Context())

		code := http.StatusOK
		if report.Status == health.Unhealthy {
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(report)
	})
	return r
}

// Serve starts the metrics server in the background.
func Serve(ctx context.Context, addr string, h http.Handler, log *zap.Logger) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		log.Info("metrics server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server error", zap.Error(err))
		}
	}()

	return srv
}

// WriteTextfile dumps every metric in g to path in the node-exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
