package monitor

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func newTestMonitor() *Monitor {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewMonitor(log)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(newTestMonitor().Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health returned err: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "OK" {
		t.Errorf("got %d %q", resp.StatusCode, body)
	}
}

func TestMetricsExposed(t *testing.T) {
	mon := newTestMonitor()
	ReadingsCaptured.Add(3)

	rec := httptest.NewRecorder()
	mon.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "dmm_readings_captured_total") {
		t.Error("dmm_readings_captured_total missing from /metrics")
	}
}

func TestCloseWithoutServer(t *testing.T) {
	if err := newTestMonitor().Close(); err != nil {
		t.Errorf("Close returned err: %v", err)
	}
}
