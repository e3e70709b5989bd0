package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/augcode13-glitch/paapimg/internal/handler"
)

const sweepInterval = time.Minute

// runServer запускает HTTP сервер и блокируется до отмены контекста
func runServer(ctx context.Context, a *App) error {
	var db handler.Pinger
	if a.DB != nil {
		db = a.DB.DB
	}
	feedHandler := handler.NewFeedHandler(a.Refill, a.Publisher, db, a.logger)

	router := handler.NewRouter(handler.RouterConfig{
		Handler:        feedHandler,
		Registry:       a.Registry,
		Verifier:       a.Verifier,
		Users:          a.Users,
		RequestTimeout: a.Config.RequestTimeout,
		Logger:         a.logger,
	})

	serverAddr := fmt.Sprintf(":%s", a.Config.ServerPort)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go a.Registry.Run(ctx, sweepInterval)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutdown signal received, stopping http server")

	ctxServer, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.logger.Info("http server stopped")
	return nil
}
