package metrics

import (
	"math"
	"sync"
	"time"

	"BiasLab/internal/domain"
)

const (
	responseTimeWindow = 100
	accuracyWindow     = 50
	degradedThreshold  = 5.0
)

// HealthReport is the derived view served from GET /metrics.
type HealthReport struct {
	Status             string  `json:"status"`
	ArticlesProcessed  int     `json:"articles_processed"`
	AvgResponseTimeMS  float64 `json:"avg_response_time_ms"`
	ErrorRatePercent   float64 `json:"error_rate_percent"`
	UptimeHours        float64 `json:"uptime_hours"`
	AccuracyRate       float64 `json:"accuracy_rate"`
	ThroughputPerHour  float64 `json:"throughput_per_hour"`
}

// System tracks process-wide analysis counters. All mutations and reads
// go through the mutex: request handlers run in parallel goroutines.
type System struct {
	mu sync.Mutex

	articlesProcessed   int
	totalProcessingTime float64
	errorCount          int
	lastAnalysis        time.Time
	uptimeStart         time.Time
	apiCallsToday       int

	responseTimes  []float64
	accuracyScores []float64
}

// NewSystem starts all counters at zero with uptime anchored to now.
func NewSystem() *System {
	return &System{uptimeStart: time.Now().UTC()}
}

// RecordScore appends a successful scoring sample. Lists grow without
// bound; the trailing window is applied at report time.
func (s *System) RecordScore(processingMS, confidence float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responseTimes = append(s.responseTimes, processingMS)
	s.accuracyScores = append(s.accuracyScores, confidence)
}

// RecordArticle accounts for one completed pipeline run.
func (s *System) RecordArticle(processingMS float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articlesProcessed++
	s.totalProcessingTime += processingMS
	s.lastAnalysis = time.Now().UTC()
	s.apiCallsToday++
}

// RecordError accounts for one orchestrator-level failure.
func (s *System) RecordError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorCount++
}

// ArticlesProcessed returns the monotonically increasing success count.
func (s *System) ArticlesProcessed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.articlesProcessed
}

// ErrorCount returns the monotonically increasing failure count.
func (s *System) ErrorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errorCount
}

// Uptime reports how long the process has been serving.
func (s *System) Uptime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.uptimeStart)
}

// ProcessingSpeed returns average processing time per article in ms.
func (s *System) ProcessingSpeed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalProcessingTime / math.Max(float64(s.articlesProcessed), 1)
}

// Snapshot computes the derived health view over the current counters.
func (s *System) Snapshot() HealthReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	avgResponse := trailingMean(s.responseTimes, responseTimeWindow)
	accuracy := trailingMean(s.accuracyScores, accuracyWindow) * 100

	errorRate := float64(s.errorCount) / math.Max(float64(s.articlesProcessed), 1) * 100

	uptimeHours := time.Since(s.uptimeStart).Hours()
	throughput := float64(s.articlesProcessed) / math.Max(uptimeHours, 0.01)

	status := domain.StatusHealthy
	if errorRate >= degradedThreshold {
		status = domain.StatusDegraded
	}

	return HealthReport{
		Status:            status,
		ArticlesProcessed: s.articlesProcessed,
		AvgResponseTimeMS: round2(avgResponse),
		ErrorRatePercent:  round2(errorRate),
		UptimeHours:       round2(uptimeHours),
		AccuracyRate:      round2(accuracy),
		ThroughputPerHour: round2(throughput),
	}
}

func trailingMean(samples []float64, window int) float64 {
	if len(samples) == 0 {
		return 0
	}
	if len(samples) > window {
		samples = samples[len(samples)-window:]
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Business tracks coarse usage tallies surfaced on the strategy
// endpoint. The active-user figure is a crude per-request count, not a
// deduplicated user total.
type Business struct {
	mu          sync.Mutex
	activeUsers int
}

// NewBusiness returns zeroed business counters.
func NewBusiness() *Business {
	return &Business{}
}

// TrackSegment tallies a request that carried a user-segment tag.
func (b *Business) TrackSegment(segment domain.UserSegment) {
	if segment == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.activeUsers++
}

// ActiveUsers returns the running segment tally.
func (b *Business) ActiveUsers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.activeUsers
}
