package metrics

import (
	"testing"

	"BiasLab/internal/domain"
)

func TestSnapshotEmpty(t *testing.T) {
	t.Parallel()

	report := NewSystem().Snapshot()
	if report.Status != domain.StatusHealthy {
		t.Fatalf("expected healthy status, got %s", report.Status)
	}
	if report.ErrorRatePercent != 0 {
		t.Fatalf("expected 0 error rate, got %v", report.ErrorRatePercent)
	}
	if report.AvgResponseTimeMS != 0 || report.AccuracyRate != 0 {
		t.Fatalf("expected zeroed averages, got %+v", report)
	}
}

func TestResponseTimeWindowKeepsLast100(t *testing.T) {
	t.Parallel()

	sys := NewSystem()
	// 50 old samples at 1000ms, then 100 recent ones at 10ms: only the
	// recent window should be reflected.
	for i := 0; i < 50; i++ {
		sys.RecordScore(1000, 0.5)
	}
	for i := 0; i < 100; i++ {
		sys.RecordScore(10, 0.5)
	}

	report := sys.Snapshot()
	if report.AvgResponseTimeMS != 10 {
		t.Fatalf("expected avg over last 100 samples = 10, got %v", report.AvgResponseTimeMS)
	}
}

func TestAccuracyWindowKeepsLast50(t *testing.T) {
	t.Parallel()

	sys := NewSystem()
	for i := 0; i < 20; i++ {
		sys.RecordScore(100, 0.1)
	}
	for i := 0; i < 50; i++ {
		sys.RecordScore(100, 0.8)
	}

	report := sys.Snapshot()
	if report.AccuracyRate != 80 {
		t.Fatalf("expected accuracy over last 50 samples = 80, got %v", report.AccuracyRate)
	}
}

func TestErrorRateFlipsHealthStatus(t *testing.T) {
	t.Parallel()

	sys := NewSystem()
	for i := 0; i < 100; i++ {
		sys.RecordArticle(100)
	}
	for i := 0; i < 6; i++ {
		sys.RecordError()
	}

	report := sys.Snapshot()
	if report.ErrorRatePercent != 6 {
		t.Fatalf("expected 6%% error rate, got %v", report.ErrorRatePercent)
	}
	if report.Status != domain.StatusDegraded {
		t.Fatalf("expected degraded status, got %s", report.Status)
	}
}

func TestCountersAreMonotonic(t *testing.T) {
	t.Parallel()

	sys := NewSystem()
	lastProcessed, lastErrors := 0, 0
	for i := 0; i < 25; i++ {
		sys.RecordArticle(50)
		if i%5 == 0 {
			sys.RecordError()
		}

		processed, errors := sys.ArticlesProcessed(), sys.ErrorCount()
		if processed < lastProcessed || errors < lastErrors {
			t.Fatalf("counters decreased: processed %d->%d errors %d->%d",
				lastProcessed, processed, lastErrors, errors)
		}
		lastProcessed, lastErrors = processed, errors
	}

	if lastProcessed != 25 {
		t.Fatalf("expected 25 processed, got %d", lastProcessed)
	}
	if lastErrors != 5 {
		t.Fatalf("expected 5 errors, got %d", lastErrors)
	}
}

func TestThroughputUsesUptimeFloor(t *testing.T) {
	t.Parallel()

	sys := NewSystem()
	sys.RecordArticle(100)

	// Freshly started process: uptime clamps to 0.01h.
	report := sys.Snapshot()
	if report.ThroughputPerHour <= 0 || report.ThroughputPerHour > 100 {
		t.Fatalf("unexpected throughput %v", report.ThroughputPerHour)
	}
}

func TestBusinessTracksSegmentsOnly(t *testing.T) {
	t.Parallel()

	biz := NewBusiness()
	biz.TrackSegment(domain.SegmentJournalist)
	biz.TrackSegment("")
	biz.TrackSegment(domain.SegmentResearcher)

	if got := biz.ActiveUsers(); got != 2 {
		t.Fatalf("expected 2 active users, got %d", got)
	}
}
