package app

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TOKEN_STORE", "file")
	t.Setenv("TOKEN_FILE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIURL != "http://localhost:3000/api/v1" {
		t.Fatalf("unexpected api url %q", cfg.APIURL)
	}
	if cfg.APITimeout != 10*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.APITimeout)
	}
	if cfg.TokenStore != TokenStoreFile {
		t.Fatalf("unexpected store %q", cfg.TokenStore)
	}
	if cfg.TokenFile != filepath.Join(home, ".barbox", "token") {
		t.Fatalf("unexpected token file %q", cfg.TokenFile)
	}
	if cfg.IsProduction() {
		t.Fatalf("default env should not be production")
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"relative url":  {"BARBOX_API_URL": "/api/v1"},
		"ftp url":       {"BARBOX_API_URL": "ftp://example.com"},
		"zero timeout":  {"BARBOX_API_TIMEOUT": "0s"},
		"unknown store": {"TOKEN_STORE": "sqlite"},
		"redis no addr": {"TOKEN_STORE": "redis", "REDIS_ADDR": ""},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(); err == nil {
				t.Fatalf("expected error for %v", env)
			}
		})
	}
}

func TestLoadConfigNormalizesStoreName(t *testing.T) {
	t.Setenv("TOKEN_STORE", " Memory ")
	t.Setenv("APP_ENV", "production")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.TokenStore != TokenStoreMemory {
		t.Fatalf("unexpected store %q", cfg.TokenStore)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production")
	}
}

func TestLoggerFormatAndLevel(t *testing.T) {
	var buf strings.Builder
	logger := newLogger(&Config{LogFormat: "json", LogLevel: "warn"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) {
		t.Fatalf("unexpected log output %q", out)
	}
}
