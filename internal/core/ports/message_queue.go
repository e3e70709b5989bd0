package ports

import (
	"context"

	"github.com/augcode13-glitch/paapimg/internal/messaging/payloads"
)

// RefillPublisher публикует запросы на пополнение кэша.
// Используется планировщиком и HTTP-обработчиком.
type RefillPublisher interface {
	PublishRefillRequest(ctx context.Context, payload payloads.RefillRequestPayload) error
}

// RefillConsumer используется воркером для получения задач из очереди
type RefillConsumer interface {
	// StartConsumingRefillRequests начинает прослушивание очереди;
	// handler вызывается для каждого полученного сообщения
	StartConsumingRefillRequests(ctx context.Context, handler func(context.Context, payloads.RefillRequestPayload) error) error
}
