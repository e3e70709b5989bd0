package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/augcode13-glitch/paapimg/internal/apperr"
	"github.com/augcode13-glitch/paapimg/internal/domain"
	"github.com/jmoiron/sqlx"
)

const cacheColumns = `id, pexels_id, url, photographer, photographer_url, avg_color, width, height,
	src_original, src_large2x, src_large, src_medium, src_small, alt, cached_at`

const upsertCachedPhotoQuery = `
	INSERT INTO image_cache (pexels_id, url, photographer, photographer_url, avg_color, width, height,
		src_original, src_large2x, src_large, src_medium, src_small, alt)
	VALUES (:pexels_id, :url, :photographer, :photographer_url, :avg_color, :width, :height,
		:src_original, :src_large2x, :src_large, :src_medium, :src_small, :alt)
	ON CONFLICT (pexels_id) DO UPDATE SET
		url = EXCLUDED.url,
		photographer = EXCLUDED.photographer,
		photographer_url = EXCLUDED.photographer_url,
		avg_color = EXCLUDED.avg_color,
		width = EXCLUDED.width,
		height = EXCLUDED.height,
		src_original = EXCLUDED.src_original,
		src_large2x = EXCLUDED.src_large2x,
		src_large = EXCLUDED.src_large,
		src_medium = EXCLUDED.src_medium,
		src_small = EXCLUDED.src_small,
		alt = EXCLUDED.alt
	`

// CacheStorage хранит кэш подборки Pexels в таблице image_cache
type CacheStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewCacheStorage(db *sqlx.DB, logger *slog.Logger) *CacheStorage {
	return &CacheStorage{db: db, logger: logger}
}

// ListCachedPhotos получает окно кэша, новые записи первыми, вместе с общим числом строк.
// Две выборки не атомарны: воркер может менять таблицу между ними.
func (s *CacheStorage) ListCachedPhotos(ctx context.Context, offset, limit int) (domain.CachedPage, error) {
	start := time.Now()

	q := `SELECT ` + cacheColumns + `
	FROM image_cache
	ORDER BY cached_at DESC, id DESC
	LIMIT $1 OFFSET $2
	`

	var rows []domain.CachedPhoto
	if err := s.db.SelectContext(ctx, &rows, q, limit, offset); err != nil {
		s.logger.Error("failed to list cached photos", "offset", offset, "limit", limit, "error", err)
		return domain.CachedPage{}, fmt.Errorf("%w: list cached photos: %v", apperr.ErrStoreRead, err)
	}

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM image_cache`); err != nil {
		s.logger.Error("failed to count cached photos", "error", err)
		return domain.CachedPage{}, fmt.Errorf("%w: count cached photos: %v", apperr.ErrStoreRead, err)
	}

	s.logger.Debug("listed cached photos",
		"offset", offset,
		"limit", limit,
		"count", len(rows),
		"total", total,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return domain.CachedPage{Rows: rows, Total: total}, nil
}

// UpsertCachedPhotos сохраняет фото в кэш одной транзакцией.
// Конфликт по pexels_id обновляет строку, cached_at остаётся временем первой вставки.
func (s *CacheStorage) UpsertCachedPhotos(ctx context.Context, photos []domain.CachedPhoto) (int, error) {
	if len(photos) == 0 {
		return 0, nil
	}
	start := time.Now()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin upsert: %v", apperr.ErrStoreWrite, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Warn("failed to rollback cache upsert", "error", rbErr)
			}
		}
	}()

	stmt, err := tx.PrepareNamedContext(ctx, upsertCachedPhotoQuery)
	if err != nil {
		s.logger.Error("failed to prepare cache upsert", "error", err)
		return 0, fmt.Errorf("%w: prepare upsert: %v", apperr.ErrStoreWrite, err)
	}
	defer stmt.Close()

	for i := range photos {
		if _, err = stmt.ExecContext(ctx, photos[i]); err != nil {
			s.logger.Error("failed to upsert cached photo", "pexels_id", photos[i].PexelsID, "error", err)
			return 0, fmt.Errorf("%w: upsert photo %s: %v", apperr.ErrStoreWrite, photos[i].PexelsID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		s.logger.Error("failed to commit cache upsert", "error", err)
		return 0, fmt.Errorf("%w: commit upsert: %v", apperr.ErrStoreWrite, err)
	}

	s.logger.Info("cached photos upserted",
		"count", len(photos),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return len(photos), nil
}
