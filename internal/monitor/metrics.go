package monitor

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	// Command metrics, updated by every scpi.Session
	CommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scpi_commands_total",
			Help: "SCPI commands sent, by resource and kind (write or query)",
		},
		[]string{"resource", "kind"},
	)

	CommandErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scpi_command_errors_total",
			Help: "SCPI commands that failed, by resource and kind",
		},
		[]string{"resource", "kind"},
	)

	CommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scpi_command_duration_seconds",
			Help:    "Round-trip time of SCPI commands",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// Capture metrics
	ReadingsCaptured = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dmm_readings_captured_total",
		Help: "Readings fetched from multimeter buffers",
	})

	ReadingsPublished = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dmm_readings_published_total",
		Help: "Readings published to the message queue",
	})
)

var registerOnce sync.Once

type Monitor struct {
	log    *logrus.Logger
	server *http.Server
}

func NewMonitor(log *logrus.Logger) *Monitor {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			CommandsTotal,
			CommandErrors,
			CommandDuration,
			ReadingsCaptured,
			ReadingsPublished,
		)
	})

	return &Monitor{log: log}
}

// Handler serves /metrics and /health.
func (m *Monitor) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return mux
}

// StartMetricsServer serves Handler on the given port in the background.
func (m *Monitor) StartMetricsServer(port int) {
	addr := fmt.Sprintf(":%d", port)
	m.server = &http.Server{Addr: addr, Handler: m.Handler()}
	m.log.Infof("metrics server listening on %s", addr)

	go func() {
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.log.Errorf("metrics server: %v", err)
		}
	}()
}

func (m *Monitor) Close() error {
	if m.server == nil {
		return nil
	}
	return m.server.Close()
}
