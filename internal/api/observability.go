package api

import (
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics with bounded cardinality (no per-body labels)
var (
	// Simulation metrics
	frameDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "game_frame_duration_seconds",
		Help:    "Time spent advancing one render frame (all settled fixed steps + snapshot)",
		Buckets: []float64{0.0005, 0.001, 0.002, 0.005, 0.01, 0.016, 0.032},
	})

	bodyCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "game_body_count",
		Help: "Current number of live bodies",
	})

	slicesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "game_slices_total",
		Help: "Total fruits sliced across all sessions",
	})

	livesLostTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "game_lives_lost_total",
		Help: "Total lives lost across all sessions",
	})

	sessionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "game_sessions_total",
		Help: "Sessions started",
	})

	// DoS detection metrics - use ONLY bounded label values
	connectionRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connection_rejected_total",
		Help: "Connections rejected by rate limiter or origin check",
	}, []string{"reason"}) // Bounded: "rate_limit", "origin", "ws_total_limit", "ws_ip_limit", "input_rate"

	// HTTP metrics with bounded labels
	requestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	// WebSocket metrics
	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "websocket_connections_active",
		Help: "Currently active WebSocket connections",
	})

	wsMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "websocket_messages_total",
		Help: "Total WebSocket messages sent",
	})

	pointerSamplesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pointer_samples_total",
		Help: "Pointer input samples accepted into the trail",
	})
)

// ObservabilityConfig configures the debug server
type ObservabilityConfig struct {
	Enabled    bool
	ListenAddr string // MUST stay on localhost in production
}

// DefaultObservabilityConfig returns safe defaults
func DefaultObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		Enabled:    true,
		ListenAddr: "127.0.0.1:6060", // Localhost only - never expose externally
	}
}

// StartDebugServer starts the internal observability server with pprof and
// the Prometheus endpoint. Binds to localhost only unless explicitly
// overridden via ALLOW_DEBUG_EXTERNAL.
func StartDebugServer(cfg ObservabilityConfig) error {
	if !cfg.Enabled {
		log.Println("📊 Debug server disabled")
		return nil
	}

	if cfg.ListenAddr != "127.0.0.1:6060" && cfg.ListenAddr != "localhost:6060" {
		if os.Getenv("ALLOW_DEBUG_EXTERNAL") != "true" {
			log.Println("⚠️ Debug server forced to localhost for security")
			cfg.ListenAddr = "127.0.0.1:6060"
		}
	}

	mux := http.NewServeMux()

	// pprof endpoints for profiling
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	go func() {
		log.Printf("📊 Debug server starting on %s", cfg.ListenAddr)
		log.Printf("   - pprof:   http://%s/debug/pprof/", cfg.ListenAddr)
		log.Printf("   - metrics: http://%s/metrics", cfg.ListenAddr)

		if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
			log.Printf("⚠️ Debug server error: %v", err)
		}
	}()

	return nil
}

// RecordFrame records frame timing for metrics
func RecordFrame(duration time.Duration) {
	frameDuration.Observe(duration.Seconds())
}

// UpdateBodyCount updates the live body gauge
func UpdateBodyCount(count int) {
	bodyCount.Set(float64(count))
}

// RecordSlices adds to the slice counter (called with per-interval deltas)
func RecordSlices(delta int) {
	if delta > 0 {
		slicesTotal.Add(float64(delta))
	}
}

// RecordLivesLost adds to the lives-lost counter
func RecordLivesLost(delta int) {
	if delta > 0 {
		livesLostTotal.Add(float64(delta))
	}
}

// RecordSessionStart increments the session counter
func RecordSessionStart() {
	sessionsTotal.Inc()
}

// RecordConnectionRejected increments the rejection counter.
// reason must be one of the bounded values documented on the metric.
func RecordConnectionRejected(reason string) {
	connectionRejected.WithLabelValues(reason).Inc()
}

// RecordRequest records HTTP request metrics
func RecordRequest(method, endpoint string, status int) {
	requestTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
}

// UpdateWSConnections updates WebSocket connection count
func UpdateWSConnections(count int) {
	wsConnectionsActive.Set(float64(count))
}

// IncrementWSMessages increments WebSocket message counter
func IncrementWSMessages() {
	wsMessagesTotal.Inc()
}

// RecordPointerSample counts an accepted input sample
func RecordPointerSample() {
	pointerSamplesTotal.Inc()
}
