package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCollectorRecordsHTTPMetrics(t *testing.T) {
	collector, err := NewCollector()
	if err != nil {
		t.Fatalf("NewCollector returned error: %v", err)
	}

	handlerInvoked := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerInvoked = true
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("ok"))
	})

	instrumented := collector.InstrumentHandler(handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()

	instrumented.ServeHTTP(rr, req)

	if !handlerInvoked {
		t.Fatal("expected handler to be invoked")
	}

	if rr.Code != http.StatusAccepted {
		t.Fatalf("unexpected status code: %d", rr.Code)
	}

	body := scrape(t, collector)
	if !strings.Contains(body, `feedsim_http_requests_total{method="GET",path="/test",status="202"} 1`) {
		t.Fatalf("requests_total metric not recorded, body=%q", body)
	}

	if !strings.Contains(body, `feedsim_http_request_duration_seconds_count{method="GET",path="/test",status="202"} 1`) {
		t.Fatalf("request_duration_seconds_count metric not recorded, body=%q", body)
	}
}

func TestCollectorRecordsSimulationMetrics(t *testing.T) {
	collector, err := NewCollector()
	if err != nil {
		t.Fatalf("NewCollector returned error: %v", err)
	}

	collector.PostGenerated()
	collector.PostGenerated()
	collector.EngagementSimulated("like")
	collector.TickError("posting")
	collector.ObserveTick("algorithm", 50*time.Millisecond)

	body := scrape(t, collector)
	checks := []string{
		`feedsim_simulation_posts_generated_total 2`,
		`feedsim_simulation_engagements_total{type="like"} 1`,
		`feedsim_simulation_tick_errors_total{loop="posting"} 1`,
		`feedsim_simulation_tick_duration_seconds_count{loop="algorithm"} 1`,
	}
	for _, check := range checks {
		if !strings.Contains(body, check) {
			t.Errorf("missing metric %q", check)
		}
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var collector *Collector

	// Must not panic.
	collector.PostGenerated()
	collector.EngagementSimulated("share")
	collector.TickError("algorithm")
	collector.ObserveTick("posting", time.Second)
}

func scrape(t *testing.T, collector *Collector) string {
	t.Helper()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	collector.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected metrics handler to return 200, got %d", rr.Code)
	}
	return rr.Body.String()
}
