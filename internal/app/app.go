// Package app wires configuration into a ready chat handler.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"chat-relay/handler"
	appconfig "chat-relay/internal/config"
	"chat-relay/internal/integrations/openai"
	"chat-relay/internal/integrations/paramstore"
	"chat-relay/internal/usecase"
)

// NewHandler builds the chat handler for cfg. The returned func releases the key cache.
func NewHandler(ctx context.Context, cfg appconfig.Config, log *slog.Logger) (*handler.Handler, func(), error) {
	keys, closeKeys, err := newKeySource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	var opts []openai.Option
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)

	svc, err := usecase.NewRelayService(keys, client, cfg.Model, cfg.ResponseMode)
	if err != nil {
		closeKeys()
		return nil, nil, fmt.Errorf("app: create relay service: %w", err)
	}

	h, err := handler.NewHandler(svc, log)
	if err != nil {
		closeKeys()
		return nil, nil, fmt.Errorf("app: create handler: %w", err)
	}

	if cfg.APIKey == "" && !cfg.UsesParamStore() {
		log.Warn("OPENAI_API_KEY is not set; chat requests will fail until it is configured")
	}
	log.Info("chat relay ready",
		"model", cfg.Model,
		"response_mode", string(cfg.ResponseMode),
		"key_from_param_store", cfg.UsesParamStore(),
	)
	return h, closeKeys, nil
}

func newKeySource(ctx context.Context, cfg appconfig.Config) (usecase.KeySource, func(), error) {
	if !cfg.UsesParamStore() {
		return usecase.StaticKey(cfg.APIKey), func() {}, nil
	}

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("app: load AWS config: %w", err)
	}
	ssmClient, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
	if err != nil {
		return nil, nil, fmt.Errorf("app: create SSM client: %w", err)
	}
	keys, err := paramstore.NewKeySource(ssmClient, cfg.APIKeyParam, cfg.KeyCacheTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("app: create key source: %w", err)
	}
	return keys, keys.Close, nil
}
