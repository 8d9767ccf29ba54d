// Package metrics exports Prometheus metrics for Orb Dash sessions and
// serves them over HTTP next to a health check.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/orb-dash/internal/games/runner"
)

// Rejection reasons. Label values stay bounded.
const (
	RejectRateLimit = "rate_limit"
	RejectNoPTY     = "no_pty"
)

// Metrics holds the collectors of one registry.
// All methods are safe on a nil receiver so callers can run without metrics.
type Metrics struct {
	registry *prometheus.Registry

	events         *prometheus.CounterVec
	sessionsActive prometheus.Gauge
	sessionsTotal  prometheus.Counter
	frames         prometheus.Counter
	frameDuration  prometheus.Histogram
	particles      prometheus.Gauge
	rejected       *prometheus.CounterVec
	runs           prometheus.Counter
}

// New creates collectors on a fresh registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "orbdash_events_total",
			Help: "Session events by kind",
		}, []string{"kind"}),
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "orbdash_sessions_active",
			Help: "Currently connected play sessions",
		}),
		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "orbdash_sessions_total",
			Help: "Play sessions started",
		}),
		frames: factory.NewCounter(prometheus.CounterOpts{
			Name: "orbdash_frames_total",
			Help: "Simulation frames stepped",
		}),
		frameDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "orbdash_frame_duration_seconds",
			Help:    "Time spent in one simulation step",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		}),
		particles: factory.NewGauge(prometheus.GaugeOpts{
			Name: "orbdash_particles",
			Help: "Live particles in the most recently stepped session",
		}),
		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "orbdash_connections_rejected_total",
			Help: "SSH connections refused before a session started",
		}, []string{"reason"}),
		runs: factory.NewCounter(prometheus.CounterOpts{
			Name: "orbdash_runs_saved_total",
			Help: "Finished runs written to the score store",
		}),
	}

	// Pre-create every label so series exist before the first event.
	for _, kind := range runner.EventKinds {
		m.events.WithLabelValues(string(kind))
	}
	m.rejected.WithLabelValues(RejectRateLimit)
	m.rejected.WithLabelValues(RejectNoPTY)

	return m
}

// OnEvent implements runner.EventSink.
func (m *Metrics) OnEvent(e runner.Event) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(string(e.Kind)).Inc()
}

// SessionStarted records a new connected session.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessionsActive.Inc()
	m.sessionsTotal.Inc()
}

// SessionEnded records a disconnected session.
func (m *Metrics) SessionEnded() {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
}

// ObserveFrame records one stepped frame.
func (m *Metrics) ObserveFrame(d time.Duration, particles int) {
	if m == nil {
		return
	}
	m.frames.Inc()
	m.frameDuration.Observe(d.Seconds())
	m.particles.Set(float64(particles))
}

// RecordRejected counts a refused connection. reason is one of the Reject constants.
func (m *Metrics) RecordRejected(reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}

// RecordRun counts a finished run persisted to storage.
func (m *Metrics) RecordRun() {
	if m == nil {
		return
	}
	m.runs.Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Router serves /metrics and /healthz.
func (m *Metrics) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})

	return r
}

// Serve runs the metrics HTTP server until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           m.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
