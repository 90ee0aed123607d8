package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// ErrMissingRemote is returned when the remote backend credentials are absent.
// The service cannot start without them: every pipeline ultimately talks to
// the remote backend, even if only to fail over to the local cache.
var ErrMissingRemote = errors.New("REMOTE_URL and REMOTE_ANON_KEY must be set")

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Remote RemoteConfig
	Store  StoreConfig
	Sync   SyncConfig
	Log    LogConfig
}

// RemoteConfig holds the hosted backend connection parameters.
type RemoteConfig struct {
	URL     string
	AnonKey string
	Timeout time.Duration
}

// StoreConfig configures the on-device SQLite store.
type StoreConfig struct {
	Path         string
	MaxOpenConns int
}

// SyncConfig tunes the prefetch/push pipelines and the connectivity probe.
type SyncConfig struct {
	HydrationTimeout time.Duration
	ProbeInterval    time.Duration
	RetryDelay       time.Duration
	QueueWorkers     int
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Remote = RemoteConfig{
		URL:     v.GetString("REMOTE_URL"),
		AnonKey: v.GetString("REMOTE_ANON_KEY"),
		Timeout: parseDuration(v.GetString("REMOTE_TIMEOUT"), 10*time.Second),
	}

	cfg.Store = StoreConfig{
		Path:         v.GetString("STORE_PATH"),
		MaxOpenConns: v.GetInt("STORE_MAX_OPEN_CONNS"),
	}

	cfg.Sync = SyncConfig{
		HydrationTimeout: parseDuration(v.GetString("SYNC_HYDRATION_TIMEOUT"), 3*time.Second),
		ProbeInterval:    parseDuration(v.GetString("SYNC_PROBE_INTERVAL"), 30*time.Second),
		RetryDelay:       parseDuration(v.GetString("SYNC_RETRY_DELAY"), 15*time.Second),
		QueueWorkers:     v.GetInt("SYNC_QUEUE_WORKERS"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces the required connection parameters. Their absence is a
// fatal startup error rather than something to limp along without.
func (c *Config) Validate() error {
	if c.Remote.URL == "" || c.Remote.AnonKey == "" {
		return ErrMissingRemote
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8700)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("REMOTE_URL", "")
	v.SetDefault("REMOTE_ANON_KEY", "")
	v.SetDefault("REMOTE_TIMEOUT", "10s")

	v.SetDefault("STORE_PATH", "./clubsync.db")
	v.SetDefault("STORE_MAX_OPEN_CONNS", 1)

	v.SetDefault("SYNC_HYDRATION_TIMEOUT", "3s")
	v.SetDefault("SYNC_PROBE_INTERVAL", "30s")
	v.SetDefault("SYNC_RETRY_DELAY", "15s")
	v.SetDefault("SYNC_QUEUE_WORKERS", 1)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
