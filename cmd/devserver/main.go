package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"chat-relay/handler"
	"chat-relay/internal/app"
	"chat-relay/internal/config"
	"chat-relay/internal/logging"
)

var version = "dev"

type CLI struct {
	Serve   ServeCommand   `cmd:"serve" default:"1" help:"Serve the chat function over plain HTTP."`
	Version VersionCommand `cmd:"version" help:"Print the version."`
}

type ServeCommand struct {
	ListenAddr string `help:"The address to listen on." env:"LISTEN_ADDR" default:"localhost:8888"`
	Path       string `help:"The path the chat function is mounted on." env:"FUNCTION_PATH" default:"/.netlify/functions/chat"`
	EnvFile    string `help:"Optional .env file loaded before configuration is read." env:"ENV_FILE" default:".env"`
}

func (c ServeCommand) Run(ctx context.Context) error {
	if c.EnvFile != "" {
		if err := godotenv.Load(c.EnvFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}

	cfg, err := config.Load(os.Getenv)
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel, os.Stderr)

	h, closeFn, err := app.NewHandler(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeFn()

	mux := http.NewServeMux()
	mux.Handle(c.Path, handler.NewHTTPHandler(h, log))

	log.Info("Listening", slog.String("addr", c.ListenAddr), slog.String("path", c.Path))
	s := &http.Server{
		Addr:              c.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.ListenAndServe()
}

type VersionCommand struct{}

func (c VersionCommand) Run(_ context.Context) error {
	fmt.Println(version)
	return nil
}

func main() {
	var cli CLI
	ctx := context.Background()
	kctx := kong.Parse(&cli,
		kong.Description("Local HTTP server for the chat relay function."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err := kctx.Run(); err != nil {
		log := logging.New("error", os.Stderr)
		log.Error("error", slog.Any("error", err))
		os.Exit(1)
	}
}
