package jobs

import (
	"context"

	"aeroportal/flightops/internal/config"
	"aeroportal/flightops/internal/logging"
	"aeroportal/flightops/internal/metrics"
)

// InitializeJobs starts the background jobs and returns them for manual triggering.
func InitializeJobs(ctx context.Context, cfg *config.Config, source AlertSource, metricsReg *metrics.MetricsRegistry) *ExpirationAlertJob {
	var notifier Notifier = LogNotifier{}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			logging.Error("Telegram notifier unavailable, falling back to log", "error", err)
		} else {
			notifier = tg
		}
	}

	alertJob := NewExpirationAlertJob(source, notifier, cfg.MinAlertSeverity, metricsReg)
	go alertJob.RunScheduled(ctx, cfg.AlertsInterval)

	logging.Info("Background jobs started",
		"expiration_alerts_interval", cfg.AlertsInterval.String(),
		"notifier", notifier.Name(),
	)
	return alertJob
}
