package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aeroportal/flightops/internal/flightops"
	"aeroportal/flightops/internal/logging"
	"aeroportal/flightops/internal/metrics"
	"aeroportal/flightops/internal/models/dtos"
)

const expirationAlertJobName = "expiration_alerts"

// AlertSource lists tracked items at or above a severity.
type AlertSource interface {
	Alerts(ctx context.Context, min flightops.Severity) ([]dtos.ExpirationItem, error)
}

// ExpirationAlertJob sends a digest of crew and aircraft limits that need attention.
type ExpirationAlertJob struct {
	source      AlertSource
	notifier    Notifier
	minSeverity flightops.Severity
	metrics     *metrics.MetricsRegistry
}

func NewExpirationAlertJob(source AlertSource, notifier Notifier, minSeverity flightops.Severity, metricsReg *metrics.MetricsRegistry) *ExpirationAlertJob {
	return &ExpirationAlertJob{
		source:      source,
		notifier:    notifier,
		minSeverity: minSeverity,
		metrics:     metricsReg,
	}
}

// Run evaluates every limit once and notifies when anything reaches the threshold.
func (j *ExpirationAlertJob) Run(ctx context.Context) error {
	start := time.Now()
	defer func() {
		j.metrics.JobDuration.WithLabelValues(expirationAlertJobName).Observe(time.Since(start).Seconds())
	}()

	alerts, err := j.source.Alerts(ctx, j.minSeverity)
	if err != nil {
		return fmt.Errorf("failed to evaluate expirations: %w", err)
	}
	if len(alerts) == 0 {
		logging.Debug("No expiration alerts", "min_severity", j.minSeverity)
		return nil
	}

	if err := j.notifier.Notify(ctx, renderDigest(alerts)); err != nil {
		return err
	}
	for _, a := range alerts {
		j.metrics.ExpirationAlertsTotal.WithLabelValues(string(a.Severity)).Inc()
	}

	logging.Info("Expiration alerts sent",
		"count", len(alerts),
		"notifier", j.notifier.Name(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// RunScheduled runs the job immediately and then on every tick until ctx ends.
func (j *ExpirationAlertJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := j.Run(ctx); err != nil {
		logging.Error("Expiration alert job failed", "run", "initial", "error", err)
	}

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				logging.Error("Expiration alert job failed", "run", "scheduled", "error", err)
			}
		case <-ctx.Done():
			logging.Info("Expiration alert job stopped")
			return
		}
	}
}

func renderDigest(alerts []dtos.ExpirationItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d item(s) need attention:\n", len(alerts))
	for _, a := range alerts {
		fmt.Fprintf(&b, "[%s] %s %s", a.Severity, a.Subject, a.Item)
		if a.DaysRemaining != nil {
			fmt.Fprintf(&b, " | %d day(s)", *a.DaysRemaining)
		}
		if a.HoursRemaining != nil {
			fmt.Fprintf(&b, " | %.1f h", *a.HoursRemaining)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
