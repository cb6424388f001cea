package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"BiasLab/internal/domain"
	"BiasLab/internal/metrics"
)

type stubEngine struct {
	lastURL     string
	lastSegment domain.UserSegment
}

func (e *stubEngine) ProcessArticle(ctx context.Context, url string, segment domain.UserSegment) domain.AnalysisResponse {
	e.lastURL = url
	e.lastSegment = segment
	return domain.AnalysisResponse{
		ArticleID:          "analysis_1_1",
		URL:                url,
		Title:              "Stub Title",
		Source:             "Reuters",
		Scores:             map[string]float64{domain.DimensionIdeologicalStance: 70},
		HighlightedPhrases: map[string][]string{},
		Confidence:         0.9,
		ProcessingTimeMS:   12,
		Timestamp:          "2025-08-09T00:00:00Z",
		Status:             domain.StatusSuccess,
	}
}

func newTestServer(engine Engine) (*Server, *metrics.System) {
	sys := metrics.NewSystem()
	return NewServer(engine, sys, metrics.NewBusiness(), nil), sys
}

func TestAnalyzeUninitializedEngine(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"url":"https://reuters.com/a"}`))

	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestAnalyzeRoundTrip(t *testing.T) {
	t.Parallel()

	engine := &stubEngine{}
	server, _ := newTestServer(engine)
	body := `{"url":"https://reuters.com/a","priority":"high","user_segment":"journalist"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))

	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if engine.lastURL != "https://reuters.com/a" || engine.lastSegment != domain.SegmentJournalist {
		t.Fatalf("engine received %q / %q", engine.lastURL, engine.lastSegment)
	}

	var resp domain.AnalysisResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != domain.StatusSuccess || resp.Source != "Reuters" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAnalyzeValidation(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(&stubEngine{})

	cases := []struct {
		name string
		body string
	}{
		{"missing url", `{}`},
		{"bad scheme", `{"url":"ftp://example.org/a"}`},
		{"bad priority", `{"url":"https://example.org/a","priority":"asap"}`},
		{"bad segment", `{"url":"https://example.org/a","user_segment":"blogger"}`},
		{"not json", `hello`},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(tc.body))
		server.Router().ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, rec.Code)
		}
	}
}

func TestHealthStates(t *testing.T) {
	t.Parallel()

	uninitialized, _ := newTestServer(nil)
	rec := httptest.NewRecorder()
	uninitialized.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before init, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unhealthy") {
		t.Fatalf("expected unhealthy body, got %s", rec.Body.String())
	}

	ready, _ := newTestServer(&stubEngine{})
	rec = httptest.NewRecorder()
	ready.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after init, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if body["status"] != "healthy" || body["system_load"] != "normal" {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	server, sys := newTestServer(&stubEngine{})
	for i := 0; i < 100; i++ {
		sys.RecordArticle(10)
	}
	for i := 0; i < 6; i++ {
		sys.RecordError()
	}

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var report metrics.HealthReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.ErrorRatePercent != 6 || report.Status != domain.StatusDegraded {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestRootDescriptor(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(&stubEngine{})
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Narrative clustering") {
		t.Fatalf("unexpected descriptor: %s", rec.Body.String())
	}
}

func TestDemoEndpoints(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(&stubEngine{})
	for _, path := range []string{"/demo/instagram-analysis", "/demo/competitive-analysis", "/demo/user-segments"} {
		rec := httptest.NewRecorder()
		server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestBusinessIntelligence(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(&stubEngine{})
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/business-intelligence", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := body["revenue_metrics"]; !ok {
		t.Fatalf("missing revenue_metrics: %v", body)
	}
}
