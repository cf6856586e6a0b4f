package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"chat-relay/internal/app"
	"chat-relay/internal/config"
	"chat-relay/internal/logging"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, os.Stderr)
	slog.SetDefault(log)

	// ---- Handler ----
	h, closeFn, err := app.NewHandler(ctx, cfg, log)
	if err != nil {
		log.Error("failed to create handler", "err", err)
		os.Exit(1)
	}
	defer closeFn()

	lambda.Start(h.Handle)
}
