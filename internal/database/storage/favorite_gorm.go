package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/augcode13-glitch/paapimg/internal/apperr"
	"github.com/augcode13-glitch/paapimg/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFavoriteStorage реализует ports.FavoriteStorage с использованием GORM
type GormFavoriteStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormFavoriteStorage создает новый экземпляр GormFavoriteStorage
func NewGormFavoriteStorage(db *gorm.DB, logger *slog.Logger) *GormFavoriteStorage {
	return &GormFavoriteStorage{db: db, logger: logger}
}

// ListFavorites возвращает всё избранное пользователя, новые первыми
func (s *GormFavoriteStorage) ListFavorites(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error) {
	start := time.Now()

	var favorites []domain.Favorite
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites)
	if result.Error != nil {
		s.logger.Error("failed to list favorites", "user_id", userID, "error", result.Error)
		return nil, fmt.Errorf("%w: list favorites: %v", apperr.ErrStoreRead, result.Error)
	}

	s.logger.Debug("favorites listed",
		"user_id", userID,
		"count", len(favorites),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return favorites, nil
}

// CreateFavorite сохраняет запись избранного; ID и CreatedAt заполняются здесь
func (s *GormFavoriteStorage) CreateFavorite(ctx context.Context, favorite *domain.Favorite) error {
	if favorite.ID == uuid.Nil {
		favorite.ID = uuid.New()
	}
	if favorite.CreatedAt.IsZero() {
		favorite.CreatedAt = time.Now().UTC()
	}

	result := s.db.WithContext(ctx).Create(favorite)
	if result.Error != nil {
		s.logger.Error("failed to create favorite",
			"user_id", favorite.UserID,
			"pexels_id", favorite.PexelsID,
			"error", result.Error,
		)
		return fmt.Errorf("%w: create favorite: %v", apperr.ErrStoreWrite, result.Error)
	}

	s.logger.Info("favorite created", "id", favorite.ID, "user_id", favorite.UserID, "pexels_id", favorite.PexelsID)
	return nil
}

// DeleteFavorite удаляет запись, только если она принадлежит пользователю
func (s *GormFavoriteStorage) DeleteFavorite(ctx context.Context, userID, favoriteID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", favoriteID, userID).
		Delete(&domain.Favorite{})
	if result.Error != nil {
		s.logger.Error("failed to delete favorite", "id", favoriteID, "user_id", userID, "error", result.Error)
		return fmt.Errorf("%w: delete favorite: %v", apperr.ErrStoreWrite, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("favorite %s: %w", favoriteID, apperr.ErrNotFound)
	}

	s.logger.Info("favorite deleted", "id", favoriteID, "user_id", userID)
	return nil
}
