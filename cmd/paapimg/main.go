package main

import (
	"log/slog"
	"os"
)

func main() {
	// bootstrap-логгер (используется, пока не загружена конфигурация)
	bootstrapLogger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)

	if err := rootApp().Run(os.Args); err != nil {
		bootstrapLogger.Error("application run failed", "error", err)
		os.Exit(1)
	}
}
