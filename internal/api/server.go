package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"BiasLab/internal/domain"
	"BiasLab/internal/metrics"
)

const version = "2.0.0"

// Engine is the request-processing pipeline behind POST /analyze.
type Engine interface {
	ProcessArticle(ctx context.Context, url string, segment domain.UserSegment) domain.AnalysisResponse
}

// Server exposes the analysis pipeline and its metrics over HTTP.
type Server struct {
	engine   Engine
	metrics  *metrics.System
	business *metrics.Business
	logger   *slog.Logger
}

// NewServer wires handlers to the engine. A nil engine serves 503 on
// every functional endpoint until initialization completes.
func NewServer(engine Engine, sys *metrics.System, biz *metrics.Business, logger *slog.Logger) *Server {
	return &Server{engine: engine, metrics: sys, business: biz, logger: logger}
}

// Router builds the chi route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.recoverer)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
	r.Post("/analyze", s.handleAnalyze)
	r.Get("/business-intelligence", s.handleBusinessIntelligence)
	r.Get("/demo/instagram-analysis", s.handleDemoAnalysis)
	r.Get("/demo/competitive-analysis", s.handleDemoCompetitive)
	r.Get("/demo/user-segments", s.handleDemoSegments)

	return r
}

// recoverer turns panics into sanitized JSON errors; callers never see
// a stack trace.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if s.logger != nil {
					s.logger.Error("handler panic", "path", r.URL.Path, "panic", rec)
				}
				respondJSON(w, http.StatusInternalServerError, errorBody(fmt.Sprintf("Analysis failed: %v", rec)))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil {
		respondJSON(w, http.StatusServiceUnavailable, errorBody("Bias detection engine not available"))
		return
	}

	var req domain.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	if s.logger != nil {
		s.logger.Info("processing analysis request", "url", req.URL, "priority", req.Priority)
	}

	result := s.engine.ProcessArticle(r.Context(), req.URL, req.UserSegment)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	now := domain.FormatTimestamp(time.Now())

	if s.engine == nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "unhealthy",
			"message":   "Bias engine not initialized",
			"timestamp": now,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":             domain.StatusHealthy,
		"timestamp":          now,
		"version":            version,
		"uptime_seconds":     s.metrics.Uptime().Seconds(),
		"articles_processed": s.metrics.ArticlesProcessed(),
		"system_load":        "normal",
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil {
		respondJSON(w, http.StatusServiceUnavailable, errorBody("Bias engine not available"))
		return
	}

	respondJSON(w, http.StatusOK, s.metrics.Snapshot())
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"service":     "The Bias Lab - Complete Strategic Platform",
		"version":     version,
		"status":      "operational",
		"description": "AI-powered bias detection with strategic intelligence",
		"capabilities": []string{
			"Real-time bias analysis",
			"5-dimension scoring framework",
			"Narrative clustering",
			"Strategic intelligence",
			"Business metrics tracking",
		},
		"endpoints": map[string]string{
			"analyze":  "POST /analyze - Analyze article bias",
			"metrics":  "GET /metrics - System health metrics",
			"business": "GET /business-intelligence - Strategic metrics",
			"demo":     "GET /demo/* - Sample data and analysis",
			"health":   "GET /health - Health check",
		},
	})
}

func errorBody(detail string) map[string]string {
	return map[string]string{"detail": detail}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
