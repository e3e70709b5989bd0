package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/augcode13-glitch/paapimg/internal/core/ports"
	"github.com/augcode13-glitch/paapimg/internal/messaging/payloads"
	"github.com/google/uuid"
)

// runScheduler публикует запрос на пополнение сразу и затем каждые REFILL_INTERVAL
func runScheduler(ctx context.Context, a *App) error {
	if a.Publisher == nil {
		return errors.New("scheduler mode requires RABBITMQ_URL")
	}
	a.logger.Info("scheduler started", "interval", a.Config.Refill.Interval.String())

	publishLoop(ctx, a.Publisher, a.Config.Refill.Interval, a.logger)

	a.logger.Info("scheduler stopping")
	return nil
}

func publishLoop(ctx context.Context, publisher ports.RefillPublisher, interval time.Duration, logger *slog.Logger) {
	publish := func() {
		payload := payloads.RefillRequestPayload{
			RequestID:   uuid.NewString(),
			RequestedAt: time.Now().UTC(),
			Source:      "scheduler",
		}
		if err := publisher.PublishRefillRequest(ctx, payload); err != nil {
			// следующий тик повторит попытку
			logger.Error("failed to publish scheduled refill", "request_id", payload.RequestID, "error", err)
			return
		}
		logger.Info("scheduled refill published", "request_id", payload.RequestID)
	}

	publish()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			publish()
		}
	}
}
