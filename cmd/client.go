package cmd

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/inma-labs/inma-matcher/internal/inma"
	"github.com/inma-labs/inma-matcher/internal/secrets"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// newClient builds the backend client from the config. The base URL is
// always injected explicitly, there is no built-in default address.
func newClient(ctx context.Context, config *Config, logger *zap.Logger) (*inma.Client, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend base url is not configured (set base-url or INMA_BASE_URL)")
	}

	client := inma.New(ctx, logger, baseURL)

	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	if config.TimeoutSeconds > 0 {
		client.SetTimeout(time.Duration(config.TimeoutSeconds) * time.Second)
	}

	token, err := resolveToken(config)
	if err != nil {
		return nil, err
	}
	if token != "" {
		client.SetToken(token)
	}

	return client, nil
}

// resolveToken loads the optional backend API token. An unset token file
// means the backend is reachable without authentication.
func resolveToken(config *Config) (string, error) {
	tokenFile := strings.TrimSpace(config.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("token-file"))
	}

	if tokenFile == "" {
		return "", nil
	}

	return secrets.Load(secrets.Source{
		Name: "inma backend token",
		File: tokenFile,
	})
}
