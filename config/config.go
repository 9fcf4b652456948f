package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads the configuration from file and environment
func Load(configPath string) (*Config, error) {
	// A local .env supplies keys during development; absence is fine.
	_ = godotenv.Load()

	v := viper.New()

	// Set default values
	setDefaults(v)

	// Service keys usually come from the environment, not the file.
	_ = v.BindEnv("tourapi.service_key", "TOUR_API_KEY")
	_ = v.BindEnv("tourapi.server_service_key", "TOUR_API_KEY_SERVER")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".kortour"))
		}

		// Check /etc
		v.AddConfigPath("/etc/kortour/")
	}

	// Read config file; a missing file is fine when the environment
	// carries the service key.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Tour API defaults
	v.SetDefault("tourapi.base_url", "https://apis.data.go.kr/B551011/KorService2")
	v.SetDefault("tourapi.app_name", "MyTrip")
	v.SetDefault("tourapi.max_retries", 3)
	v.SetDefault("tourapi.timeout_seconds", 10)
	v.SetDefault("tourapi.rate_limit", 10)

	// Cache defaults
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.db", 0)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.TourAPI.ServiceKey == "" {
		return fmt.Errorf("tourapi.service_key (or TOUR_API_KEY) is required")
	}

	if cfg.TourAPI.MaxRetries < 0 {
		return fmt.Errorf("tourapi.max_retries must not be negative")
	}

	// Validate cache backend
	validBackends := map[string]bool{
		"memory": true,
		"redis":  true,
		"none":   true,
	}
	if !validBackends[cfg.Cache.Backend] {
		return fmt.Errorf("invalid cache backend: %s", cfg.Cache.Backend)
	}
	if cfg.Cache.Backend == "redis" && cfg.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required for the redis backend")
	}

	if cfg.Bookmarks.Enabled && cfg.Bookmarks.DSN == "" {
		return fmt.Errorf("bookmarks.dsn is required when bookmarks are enabled")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
