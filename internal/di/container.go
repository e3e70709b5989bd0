package di

import (
	"context"
	"log/slog"

	"github.com/augcode13-glitch/paapimg/internal/adapter/pexels"
	"github.com/augcode13-glitch/paapimg/internal/adapter/storage/minio"
	"github.com/augcode13-glitch/paapimg/internal/app"
	"github.com/augcode13-glitch/paapimg/internal/auth"
	"github.com/augcode13-glitch/paapimg/internal/config"
	"github.com/augcode13-glitch/paapimg/internal/core/ports"
	"github.com/augcode13-glitch/paapimg/internal/database/client"
	"github.com/augcode13-glitch/paapimg/internal/database/storage"
	"github.com/augcode13-glitch/paapimg/internal/feed"
	"github.com/augcode13-glitch/paapimg/internal/logger"
	"github.com/augcode13-glitch/paapimg/internal/rabbitmq"
	"github.com/augcode13-glitch/paapimg/internal/usecase"
)

// NewLogger создаёт основной логгер по настройкам из конфигурации
func NewLogger(cfg *config.Config) *slog.Logger {
	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)
	return slogger
}

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
// Pexels, MinIO, RabbitMQ и JWT необязательны: без них соответствующие функции отключаются.
func BuildApp(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (*app.App, error) {
	// 1. Инициализация PostgreSQL клиента
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 2. Инициализация хранилищ
	cacheStorage := storage.NewCacheStorage(dbClient.DB, slogger)
	userStorage := storage.NewUserStorage(dbClient.DB, slogger)
	favoriteStorage := storage.NewGormFavoriteStorage(dbClient.Gorm, slogger)

	// 3. Клиенты внешних сервисов. Интерфейсы остаются nil, а не typed nil
	var source ports.PhotoSource
	if pexelsClient, ok := pexels.NewFromConfig(cfg, slogger); ok {
		source = pexelsClient
	} else {
		slogger.Warn("PEXELS_API_KEY is not set, search and curated fallback are disabled")
	}

	var fileStorage ports.FileStorage
	if cfg.ArchiveEnabled() {
		minioClient, err := minio.NewMinioClient(ctx, cfg, slogger)
		if err != nil {
			_ = dbClient.Close()
			return nil, err
		}
		fileStorage = minioClient
	}

	// 4. RabbitMQ
	var (
		publisher ports.RefillPublisher
		consumer  ports.RefillConsumer
	)
	if cfg.RabbitMQ.RabbitMQURL != "" {
		rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			_ = dbClient.Close()
			return nil, err
		}
		publisher = rabbitMQClient
		consumer = rabbitMQClient
	}

	// 5. Аутентификация
	var verifier *auth.Verifier
	if cfg.Auth.JWTSecret != "" {
		verifier, err = auth.NewVerifier(auth.VerifierConfig{
			Secret:   cfg.Auth.JWTSecret,
			Issuer:   cfg.Auth.JWTIssuer,
			Audience: cfg.Auth.JWTAudience,
		})
		if err != nil {
			_ = dbClient.Close()
			return nil, err
		}
	} else {
		slogger.Warn("JWT_SECRET is not set, sign-in is disabled")
	}

	// 6. Бизнес-логика
	refillUseCase := usecase.NewRefillUseCase(source, cacheStorage, fileStorage, usecase.RefillOptions{
		Quota:    cfg.Refill.Quota,
		PageSize: cfg.Refill.PageSize,
	}, slogger)

	registry := feed.NewRegistry(feed.Deps{
		Source:    source,
		Cache:     cacheStorage,
		Favorites: favoriteStorage,
	}, cfg.SessionIdleTTL, slogger)

	// 7. Сборка итогового приложения
	application := app.NewApp(cfg, slogger, app.Components{
		DB:        dbClient,
		Refill:    refillUseCase,
		Registry:  registry,
		Users:     userStorage,
		Verifier:  verifier,
		Publisher: publisher,
		Consumer:  consumer,
	})

	slogger.Info("all dependencies initialized",
		"pexels", source != nil,
		"archive", fileStorage != nil,
		"queue", publisher != nil,
		"auth", verifier != nil,
	)
	return application, nil
}
