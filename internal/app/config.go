package app

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Token store backends.
const (
	TokenStoreFile   = "file"
	TokenStoreRedis  = "redis"
	TokenStoreMemory = "memory"
)

// Config holds runtime configuration for the console.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	APIURL     string        `envconfig:"BARBOX_API_URL" default:"http://localhost:3000/api/v1"`
	APITimeout time.Duration `envconfig:"BARBOX_API_TIMEOUT" default:"10s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	TokenStore string        `envconfig:"TOKEN_STORE" default:"file"`
	TokenFile  string        `envconfig:"TOKEN_FILE"`
	RedisAddr  string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisPass  string        `envconfig:"REDIS_PASSWORD"`
	RedisDB    int           `envconfig:"REDIS_DB" default:"0"`
	TokenTTL   time.Duration `envconfig:"TOKEN_TTL" default:"12h"`

	AnalyticsCacheTTL time.Duration `envconfig:"ANALYTICS_CACHE_TTL" default:"1m"`

	ExportDir string `envconfig:"EXPORT_DIR" default:"."`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.ParseRequestURI(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("BARBOX_API_URL must be an absolute http(s) URL, got %q", c.APIURL)
	}
	if c.APITimeout <= 0 {
		return errors.New("BARBOX_API_TIMEOUT must be positive")
	}
	c.TokenStore = strings.ToLower(strings.TrimSpace(c.TokenStore))
	switch c.TokenStore {
	case TokenStoreFile:
		if c.TokenFile == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("TOKEN_FILE not set and no home directory: %w", err)
			}
			c.TokenFile = filepath.Join(home, ".barbox", "token")
		}
	case TokenStoreRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR must be provided for the redis token store")
		}
	case TokenStoreMemory:
	default:
		return fmt.Errorf("TOKEN_STORE must be file, redis or memory, got %q", c.TokenStore)
	}
	return nil
}

// IsProduction returns true when the console runs against production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
