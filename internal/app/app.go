package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/augcode13-glitch/paapimg/internal/auth"
	"github.com/augcode13-glitch/paapimg/internal/config"
	"github.com/augcode13-glitch/paapimg/internal/core/ports"
	"github.com/augcode13-glitch/paapimg/internal/database/client"
	"github.com/augcode13-glitch/paapimg/internal/feed"
	"github.com/augcode13-glitch/paapimg/internal/usecase"
)

// Режимы запуска
const (
	ModeServer    = "server"
	ModeWorker    = "worker"
	ModeScheduler = "scheduler"
	ModeRefill    = "refill"
)

// Components — собранные зависимости. Publisher, Consumer и Verifier
// могут быть nil, если соответствующий сервис не сконфигурирован.
type Components struct {
	DB        *client.Client
	Refill    usecase.RefillUseCase
	Registry  *feed.Registry
	Users     ports.UserStorage
	Verifier  *auth.Verifier
	Publisher ports.RefillPublisher
	Consumer  ports.RefillConsumer
}

type App struct {
	Config *config.Config
	logger *slog.Logger
	Components
}

func NewApp(cfg *config.Config, logger *slog.Logger, c Components) *App {
	return &App{
		Config:     cfg,
		logger:     logger,
		Components: c,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает приложение в заданном режиме и блокируется до сигнала завершения
// (для refill — до конца одного запуска).
func (a *App) Run(ctx context.Context, mode string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting application", "mode", mode)

	var err error
	switch mode {
	case ModeServer:
		err = runServer(ctx, a)
	case ModeWorker:
		err = runWorker(ctx, a)
	case ModeScheduler:
		err = runScheduler(ctx, a)
	case ModeRefill:
		err = runRefillOnce(ctx, a)
	default:
		err = fmt.Errorf("unknown mode: %s (use server, worker, scheduler or refill)", mode)
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("error during shutdown", "error", closeErr)
	}
	if err != nil {
		return err
	}

	a.logger.Info("application stopped gracefully", "mode", mode)
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	var errs []error

	if a.Registry != nil {
		a.Registry.Shutdown()
	}

	// publisher и consumer — обычно один и тот же клиент RabbitMQ
	closed := map[interface{}]bool{}
	for _, v := range []interface{}{a.Publisher, a.Consumer} {
		closer, ok := v.(interface{ Close() error })
		if !ok || closed[v] {
			continue
		}
		closed[v] = true
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("rabbitmq close: %w", err))
		}
	}

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("ошибка закрытия БД: %w", err))
		}
	}

	return errors.Join(errs...)
}
