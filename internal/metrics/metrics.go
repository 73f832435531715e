// Package metrics holds the renderer's prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skyline/internal/buildinfo"
)

const namespace = "skyline"

// Collector is safe to use through a nil pointer; every method is then a
// no-op, which is what tests and tools that do not export metrics get.
type Collector struct {
	reg *prometheus.Registry

	frames         *prometheus.CounterVec
	renderDuration prometheus.Histogram
	programErrors  *prometheus.CounterVec
	assetFallbacks *prometheus.CounterVec
}

func New() *Collector {
	m := &Collector{
		reg: prometheus.NewRegistry(),
		frames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "frames_total",
				Help:      "Frames presented, by mode",
			},
			[]string{"mode"},
		),
		renderDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "cpu_render_duration_seconds",
				Help:      "Time spent shading one frame on the CPU",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
			},
		),
		programErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "program_failures_total",
				Help:      "GPU programs that failed to compile",
			},
			[]string{"program"},
		),
		assetFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "asset_fallbacks_total",
				Help:      "Asset loads that failed and kept the placeholder",
			},
			[]string{"asset"},
		),
	}

	build := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_info",
			Help:      "Build identifiers of the running binary",
		},
		[]string{"version", "commit", "date"},
	)
	build.WithLabelValues(buildinfo.Version, buildinfo.Commit, buildinfo.Date).Set(1)

	m.reg.MustRegister(
		m.frames,
		m.renderDuration,
		m.programErrors,
		m.assetFallbacks,
		build,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Collector) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// Frame counts one presented frame ("window", "cpu" or "headless").
func (m *Collector) Frame(mode string) {
	if m == nil {
		return
	}
	m.frames.WithLabelValues(mode).Inc()
}

func (m *Collector) ObserveRender(d time.Duration) {
	if m == nil {
		return
	}
	m.renderDuration.Observe(d.Seconds())
}

func (m *Collector) ProgramFailed(program string) {
	if m == nil {
		return
	}
	m.programErrors.WithLabelValues(program).Inc()
}

func (m *Collector) AssetFallback(asset string) {
	if m == nil {
		return
	}
	m.assetFallbacks.WithLabelValues(asset).Inc()
}

// Handler serves the registry in the prometheus text format.
func (m *Collector) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Collector) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	logger.Info("metrics listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
