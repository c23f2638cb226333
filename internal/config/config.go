package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/hayqway/waybot/internal/database"
)

// TelegramConfig holds Telegram bot transport settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	AdminID int64  `yaml:"admin_id" envconfig:"TELEGRAM_ADMIN_ID"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

// CatalogConfig points at the route data set and controls its refresh cycle.
type CatalogConfig struct {
	Path          string        `yaml:"path" envconfig:"CATALOG_PATH"`
	DefaultLocale string        `yaml:"default_locale" envconfig:"CATALOG_DEFAULT_LOCALE"`
	ReloadEvery   time.Duration `yaml:"reload_every" envconfig:"CATALOG_RELOAD_EVERY"`
}

// SearchConfig tunes the interactive search engine.
type SearchConfig struct {
	RadiusMeters         float64       `yaml:"radius_meters" envconfig:"SEARCH_RADIUS_METERS"`
	PageSize             int           `yaml:"page_size" envconfig:"SEARCH_PAGE_SIZE"`
	SessionTTL           time.Duration `yaml:"session_ttl" envconfig:"SEARCH_SESSION_TTL"`
	SpeedMetersPerMinute float64       `yaml:"speed_meters_per_minute" envconfig:"SEARCH_SPEED_METERS_PER_MINUTE"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// UpdateCallback identifies callback updates for rate limit exclusions.
	UpdateCallback = "callback"
	// UpdateMessage identifies message updates for rate limit exclusions.
	UpdateMessage = "message"
	// UpdateLocation identifies location updates for rate limit exclusions.
	UpdateLocation = "location"
)

// RateLimitConfig holds settings for rate limiting.
// ExcludeUpdates accepts update types to bypass limiting:
// - "callback": Telegram callback button presses
// - "message": standard text messages
// - "location": shared location messages
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// Config aggregates the whole bot configuration.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Database  database.Config `yaml:"database"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Search    SearchConfig    `yaml:"search"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if strings.TrimSpace(cfg.Catalog.Path) == "" {
		return fmt.Errorf("catalog.path is required")
	}
	if cfg.Catalog.DefaultLocale == "" {
		cfg.Catalog.DefaultLocale = "hy"
	}
	if cfg.Catalog.ReloadEvery < 0 {
		return fmt.Errorf("catalog.reload_every must be >= 0")
	}

	if cfg.Search.RadiusMeters == 0 {
		cfg.Search.RadiusMeters = 1000
	}
	if cfg.Search.RadiusMeters < 0 {
		return fmt.Errorf("search.radius_meters must be > 0")
	}
	if cfg.Search.PageSize == 0 {
		cfg.Search.PageSize = 10
	}
	if cfg.Search.PageSize < 0 {
		return fmt.Errorf("search.page_size must be > 0")
	}
	if cfg.Search.SessionTTL == 0 {
		cfg.Search.SessionTTL = 5 * time.Minute
	}
	if cfg.Search.SessionTTL < 0 {
		return fmt.Errorf("search.session_ttl must be > 0")
	}
	if cfg.Search.SpeedMetersPerMinute == 0 {
		cfg.Search.SpeedMetersPerMinute = 50
	}
	if cfg.Search.SpeedMetersPerMinute < 0 {
		return fmt.Errorf("search.speed_meters_per_minute must be > 0")
	}

	allowed := map[string]struct{}{
		UpdateCallback: {},
		UpdateMessage:  {},
		UpdateLocation: {},
	}
	for i, v := range cfg.RateLimit.ExcludeUpdates {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := allowed[key]; !ok {
			return fmt.Errorf("invalid rate_limit.exclude_updates value %q; allowed: callback, message, location", v)
		}
		cfg.RateLimit.ExcludeUpdates[i] = key
	}
	return nil
}
