package ports

import (
	"context"
	"io"

	"github.com/augcode13-glitch/paapimg/internal/domain"
	"github.com/google/uuid"
)

//go:generate mockgen -source=storage.go -destination=../../mocks/storage_mock.go -package=mocks

// CacheStorage определяет методы для работы с кэшем подборки (таблица image_cache)
type CacheStorage interface {
	// ListCachedPhotos возвращает окно строк, новые первыми, и общее число строк
	ListCachedPhotos(ctx context.Context, offset, limit int) (domain.CachedPage, error)
	// UpsertCachedPhotos идемпотентно сохраняет строки по pexels_id
	UpsertCachedPhotos(ctx context.Context, photos []domain.CachedPhoto) (int, error)
}

// FavoriteStorage определяет методы для работы с избранным пользователя
type FavoriteStorage interface {
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error)
	CreateFavorite(ctx context.Context, favorite *domain.Favorite) error
	DeleteFavorite(ctx context.Context, userID, favoriteID uuid.UUID) error
}

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	UpsertUser(ctx context.Context, user domain.User) error
}

// FileStorage определяет интерфейс для работы с файловым хранилищем (AWS S3, MinIO)
type FileStorage interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}
