package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Telegram.Token = "123:abc"
	cfg.Catalog.Path = "data/routes.json"
	return cfg
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q, want longpoll", cfg.Telegram.RunMode)
	}
	if cfg.Search.RadiusMeters != 1000 || cfg.Search.PageSize != 10 {
		t.Errorf("search defaults = %+v", cfg.Search)
	}
	if cfg.Search.SessionTTL != 5*time.Minute {
		t.Errorf("session_ttl = %v", cfg.Search.SessionTTL)
	}
	if cfg.Catalog.DefaultLocale != "hy" {
		t.Errorf("default_locale = %q", cfg.Catalog.DefaultLocale)
	}
}

func TestNormalizeRejectsMissingToken(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected an error for a missing token")
	}
}

func TestNormalizeWebhookRequiresEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	if err := Normalize(cfg); err == nil {
		t.Fatal("webhook mode without url must fail")
	}
	cfg.Webhook.URL = "https://bot.example/hook"
	cfg.Webhook.Listen = "0.0.0.0"
	cfg.Webhook.Port = 8443
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
}

func TestNormalizePollingAlias(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q, want longpoll", cfg.Telegram.RunMode)
	}
}

func TestNormalizeRejectsBadExclude(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"sticker"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("unknown exclude kind must fail")
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
telegram:
  token: "123:abc"
catalog:
  path: "routes.json"
  reload_every: 10m
search:
  session_ttl: 2m
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Catalog.ReloadEvery != 10*time.Minute {
		t.Errorf("reload_every = %v", cfg.Catalog.ReloadEvery)
	}
	if cfg.Search.SessionTTL != 2*time.Minute {
		t.Errorf("session_ttl = %v", cfg.Search.SessionTTL)
	}
}
