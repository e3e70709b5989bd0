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

// UserStorage хранит пользователей, вошедших через JWT
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// UpsertUser создаёт пользователя при первом входе или обновляет email.
func (s *UserStorage) UpsertUser(ctx context.Context, user domain.User) error {
	start := time.Now()

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO users (id, email, created_at, updated_at)
		VALUES (:id, :email, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, updated_at = EXCLUDED.updated_at
	`, &user)
	if err != nil {
		s.logger.Error("failed to upsert user", "user_id", user.ID, "error", err)
		return fmt.Errorf("%w: upsert user: %v", apperr.ErrStoreWrite, err)
	}

	s.logger.Info("user upserted",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
