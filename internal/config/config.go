// Package config loads client configuration from the environment.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/pkg/errors"
)

// Config exposes the settings the client and CLI need.
type Config interface {
	GetAppName() string
	GetAPIURL() string
	GetTokenFile() string
	GetRequestTimeout() time.Duration
}

type envConfig struct {
	AppName        string        `env:"REVIEWS_APP_NAME" envDefault:"Restaurant Reviews"`
	APIURL         string        `env:"REVIEWS_API_URL" envDefault:"http://localhost:8100/api/v1"`
	TokenFile      string        `env:"REVIEWS_TOKEN_FILE"`
	RequestTimeout time.Duration `env:"REVIEWS_REQUEST_TIMEOUT" envDefault:"30s"`
}

var _ Config = envConfig{}

// New parses the environment. When REVIEWS_TOKEN_FILE is unset the refresh
// token slot defaults to the user's config directory.
func New() (Config, error) {
	cfg := envConfig{}
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "[config.New] env.Parse")
	}

	if cfg.TokenFile == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(err, "[config.New] UserConfigDir")
		}
		cfg.TokenFile = filepath.Join(configDir, "reviews", "refresh_token")
	}

	return cfg, nil
}

func (c envConfig) GetAppName() string {
	return c.AppName
}

func (c envConfig) GetAPIURL() string {
	return c.APIURL
}

func (c envConfig) GetTokenFile() string {
	return c.TokenFile
}

func (c envConfig) GetRequestTimeout() time.Duration {
	return c.RequestTimeout
}
