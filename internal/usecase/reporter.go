package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"BiasLab/internal/domain"
	"BiasLab/internal/metrics"
	"BiasLab/internal/ports"
)

// Reporter periodically logs a health snapshot and raises an alert
// the first time the service flips from healthy to degraded.
type Reporter struct {
	driver     ports.Scheduler
	metrics    *metrics.System
	notifier   ports.Notifier
	logger     *slog.Logger
	lastStatus string
}

// NewReporter wires the scheduler driver with the metrics source.
func NewReporter(driver ports.Scheduler, sys *metrics.System, notifier ports.Notifier, logger *slog.Logger) *Reporter {
	return &Reporter{
		driver:   driver,
		metrics:  sys,
		notifier: notifier,
		logger:   logger,
	}
}

// Start registers the snapshot job with the scheduler.
func (r *Reporter) Start(ctx context.Context) error {
	if r.driver == nil || r.metrics == nil {
		return nil
	}

	return r.driver.Start(ctx, func(time.Time) {
		r.report(ctx)
	})
}

// Stop gracefully tears down the underlying scheduler.
func (r *Reporter) Stop(ctx context.Context) error {
	if r.driver == nil {
		return nil
	}
	return r.driver.Stop(ctx)
}

func (r *Reporter) report(ctx context.Context) {
	snapshot := r.metrics.Snapshot()

	if r.logger != nil {
		r.logger.Info("health snapshot",
			"status", snapshot.Status,
			"articles_processed", snapshot.ArticlesProcessed,
			"avg_response_ms", snapshot.AvgResponseTimeMS,
			"error_rate_percent", snapshot.ErrorRatePercent,
			"throughput_per_hour", snapshot.ThroughputPerHour,
		)
	}

	if snapshot.Status == domain.StatusDegraded && r.lastStatus != domain.StatusDegraded && r.notifier != nil {
		message := fmt.Sprintf("bias analysis service degraded: error rate %.2f%% over %d articles",
			snapshot.ErrorRatePercent, snapshot.ArticlesProcessed)
		if err := r.notifier.PublishAlert(ctx, message); err != nil && r.logger != nil {
			r.logger.Warn("degraded alert failed", "error", err)
		}
	}
	r.lastStatus = snapshot.Status
}
