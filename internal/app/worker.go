package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/augcode13-glitch/paapimg/internal/messaging/payloads"
	"github.com/augcode13-glitch/paapimg/internal/usecase"
)

// runWorker слушает очередь RabbitMQ и выполняет пополнение кэша по каждому сообщению
func runWorker(ctx context.Context, a *App) error {
	if a.Consumer == nil {
		return errors.New("worker mode requires RABBITMQ_URL")
	}

	a.logger.Info("worker started, waiting for refill requests")

	if err := a.Consumer.StartConsumingRefillRequests(ctx, refillMessageHandler(a.Refill, a.logger)); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	<-ctx.Done()
	a.logger.Info("worker stopping")
	return nil
}

// refillMessageHandler превращает сообщение очереди в запуск пополнения.
// Ошибка возвращается потребителю, который решает про requeue.
func refillMessageHandler(refill usecase.RefillUseCase, logger *slog.Logger) func(context.Context, payloads.RefillRequestPayload) error {
	return func(ctx context.Context, payload payloads.RefillRequestPayload) error {
		start := time.Now()
		logger.Info("processing refill request",
			"request_id", payload.RequestID,
			"source", payload.Source,
			"requested_at", payload.RequestedAt,
		)

		result, err := refill.Refill(ctx, usecase.RefillOptions{
			RunID:    payload.RequestID,
			Quota:    payload.Quota,
			PageSize: payload.PageSize,
		})
		if err != nil {
			logger.Error("refill request failed",
				"request_id", payload.RequestID,
				"error", err,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return err
		}

		logger.Info("refill request processed",
			"request_id", payload.RequestID,
			"count", result.Count,
			"manifest_url", result.ManifestURL,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}
}

// runRefillOnce выполняет одно пополнение синхронно, для запуска из cron или вручную
func runRefillOnce(ctx context.Context, a *App) error {
	result, err := a.Refill.Refill(ctx, usecase.RefillOptions{})
	if err != nil {
		return fmt.Errorf("cache refill failed: %w", err)
	}
	a.logger.Info("cache refill finished", "run_id", result.RunID, "count", result.Count, "message", result.Message)
	return nil
}
