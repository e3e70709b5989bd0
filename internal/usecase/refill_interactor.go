package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/augcode13-glitch/paapimg/internal/apperr"
	"github.com/augcode13-glitch/paapimg/internal/core/ports"
	"github.com/augcode13-glitch/paapimg/internal/domain"
	"github.com/augcode13-glitch/paapimg/internal/metrics"
	"github.com/google/uuid"
)

// Значения по умолчанию совпадают с лимитами Pexels для подборки
const (
	DefaultRefillQuota    = 1000
	DefaultRefillPageSize = 80
)

// refillUseCase implements RefillUseCase
type refillUseCase struct {
	source      ports.PhotoSource
	cache       ports.CacheStorage
	fileStorage ports.FileStorage
	defaults    RefillOptions
	logger      *slog.Logger
	now         func() time.Time
}

// NewRefillUseCase создает новый экземпляр RefillUseCase.
// source и fileStorage могут быть nil: без источника запуск завершается ошибкой,
// без хранилища манифест не пишется.
func NewRefillUseCase(
	source ports.PhotoSource,
	cache ports.CacheStorage,
	fileStorage ports.FileStorage,
	defaults RefillOptions,
	logger *slog.Logger,
) RefillUseCase {
	if defaults.Quota <= 0 {
		defaults.Quota = DefaultRefillQuota
	}
	if defaults.PageSize <= 0 {
		defaults.PageSize = DefaultRefillPageSize
	}
	return &refillUseCase{
		source:      source,
		cache:       cache,
		fileStorage: fileStorage,
		defaults:    defaults,
		logger:      logger,
		now:         time.Now,
	}
}

func (uc *refillUseCase) Refill(ctx context.Context, opts RefillOptions) (result RefillResult, err error) {
	opts = uc.withDefaults(opts)
	result.RunID = opts.RunID
	log := uc.logger.With("run_id", opts.RunID)

	defer func() {
		metrics.RefillRuns.WithLabelValues(metrics.ResultLabel(err)).Inc()
		if err != nil {
			result.Success = false
			result.Message = err.Error()
		}
	}()

	if uc.source == nil {
		return result, fmt.Errorf("%w: PEXELS_API_KEY is not configured", apperr.ErrSourceUnavailable)
	}

	startedAt := uc.now()
	log.Info("starting cache refill", "quota", opts.Quota, "page_size", opts.PageSize)

	photos, pagesRead := uc.collect(ctx, opts, log)
	if len(photos) == 0 {
		return result, fmt.Errorf("%w: no curated photos fetched", apperr.ErrSourceUnavailable)
	}

	rows := make([]domain.CachedPhoto, 0, len(photos))
	ids := make([]string, 0, len(photos))
	for _, p := range photos {
		row := domain.NewCachedPhoto(p)
		rows = append(rows, row)
		ids = append(ids, row.PexelsID)
	}

	count, err := uc.cache.UpsertCachedPhotos(ctx, rows)
	if err != nil {
		return result, fmt.Errorf("usecase: ошибка при сохранении кэша: %w", err)
	}

	result.Success = true
	result.Count = count
	result.Message = fmt.Sprintf("Cached %d images", count)
	metrics.RefillRowsCached.Set(float64(count))

	if uc.fileStorage != nil {
		manifest := RefillManifest{
			RunID:      opts.RunID,
			StartedAt:  startedAt.UTC(),
			FinishedAt: uc.now().UTC(),
			Quota:      opts.Quota,
			PagesRead:  pagesRead,
			Count:      count,
			PexelsIDs:  ids,
		}
		manifestURL, archiveErr := uc.archiveManifest(ctx, manifest)
		if archiveErr != nil {
			log.Warn("failed to archive refill manifest", "error", archiveErr)
		} else {
			result.ManifestURL = manifestURL
		}
	}

	log.Info("cache refill finished",
		"count", count,
		"pages_read", pagesRead,
		"duration_ms", uc.now().Sub(startedAt).Milliseconds(),
	)
	return result, nil
}

// collect читает страницы подборки, пока не наберётся квота, не кончатся страницы
// или не случится ошибка. Уже полученные фото при ошибке сохраняются.
// Повторы id между страницами отбрасываются: upsert в одной транзакции их не терпит.
func (uc *refillUseCase) collect(ctx context.Context, opts RefillOptions, log *slog.Logger) ([]domain.Photo, int) {
	maxPages := (opts.Quota + opts.PageSize - 1) / opts.PageSize
	seen := make(map[int64]struct{}, opts.Quota)
	photos := make([]domain.Photo, 0, opts.Quota)

	pagesRead := 0
	for page := 1; page <= maxPages; page++ {
		resp, err := uc.source.Curated(ctx, page, opts.PageSize)
		if err != nil {
			log.Error("failed to fetch curated page", "page", page, "error", err)
			break
		}
		pagesRead++

		for _, p := range resp.Photos {
			if _, dup := seen[p.ID]; dup {
				continue
			}
			seen[p.ID] = struct{}{}
			photos = append(photos, p)
		}
		log.Debug("fetched curated page", "page", page, "total_so_far", len(photos))

		if len(photos) >= opts.Quota {
			photos = photos[:opts.Quota]
			break
		}
		if !resp.HasNext {
			break
		}
	}
	return photos, pagesRead
}

func (uc *refillUseCase) archiveManifest(ctx context.Context, manifest RefillManifest) (string, error) {
	body, err := json.Marshal(manifest)
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	key := fmt.Sprintf("refill/%s.json", manifest.RunID)
	return uc.fileStorage.UploadFile(ctx, key, bytes.NewReader(body), "application/json")
}

func (uc *refillUseCase) withDefaults(opts RefillOptions) RefillOptions {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if opts.Quota <= 0 {
		opts.Quota = uc.defaults.Quota
	}
	if opts.PageSize <= 0 {
		opts.PageSize = uc.defaults.PageSize
	}
	return opts
}
