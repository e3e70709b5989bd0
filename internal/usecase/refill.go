package usecase

import (
	"context"
	"time"
)

// RefillOptions — параметры одного запуска пополнения кэша.
// Нулевые значения заменяются значениями по умолчанию из конфигурации.
type RefillOptions struct {
	RunID    string
	Quota    int
	PageSize int
}

// RefillResult — итог запуска, который видит вызывающая сторона
type RefillResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Count       int    `json:"count"`
	RunID       string `json:"run_id"`
	ManifestURL string `json:"manifest_url,omitempty"`
}

// RefillManifest описывает запуск; сохраняется в S3, если хранилище настроено
type RefillManifest struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Quota      int       `json:"quota"`
	PagesRead  int       `json:"pages_read"`
	Count      int       `json:"count"`
	PexelsIDs  []string  `json:"pexels_ids"`
}

// RefillUseCase определяет интерфейс задачи пополнения кэша подборки
type RefillUseCase interface {
	// Refill забирает квоту фото из подборки Pexels и идемпотентно сохраняет их в кэш.
	// Повторный запуск на тех же данных не создаёт дубликатов.
	Refill(ctx context.Context, opts RefillOptions) (RefillResult, error)
}
