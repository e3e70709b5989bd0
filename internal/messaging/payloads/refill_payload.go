package payloads

import "time"

// RefillRequestPayload — задача на пополнение кэша подборки через RabbitMQ.
// Нулевые Quota и PageSize означают значения из конфигурации воркера.
type RefillRequestPayload struct {
	RequestID   string    `json:"request_id"`
	Quota       int       `json:"quota,omitempty"`
	PageSize    int       `json:"page_size,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
	Source      string    `json:"source"`
}
