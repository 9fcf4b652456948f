package config

// Config represents the complete configuration structure
type Config struct {
	TourAPI   TourAPIConfig   `mapstructure:"tourapi"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Bookmarks BookmarksConfig `mapstructure:"bookmarks"`
	Filter    FilterConfig    `mapstructure:"filter"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// TourAPIConfig holds the Korea Tourism Organization API settings
type TourAPIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// ServiceKey is the general (client-context) data.go.kr key.
	ServiceKey string `mapstructure:"service_key"`
	// ServerServiceKey optionally overrides ServiceKey in server
	// contexts; when unset the general key is used there too.
	ServerServiceKey string  `mapstructure:"server_service_key"`
	AppName          string  `mapstructure:"app_name"`
	MaxRetries       int     `mapstructure:"max_retries"`
	TimeoutSeconds   int     `mapstructure:"timeout_seconds"`
	RateLimit        float64 `mapstructure:"rate_limit"`
}

// ExecContext identifies where an API call executes; key resolution
// depends on it.
type ExecContext int

const (
	// ExecClient is a call made on behalf of an end user.
	ExecClient ExecContext = iota
	// ExecServer is a call made by backend/batch code.
	ExecServer
)

// ResolveServiceKey returns the service key applicable in the given
// execution context. Server contexts prefer the server-only key and
// fall back to the general key; the fallback is allowed because the
// upstream is a public API.
func (c TourAPIConfig) ResolveServiceKey(ec ExecContext) string {
	if ec == ExecServer && c.ServerServiceKey != "" {
		return c.ServerServiceKey
	}
	return c.ServiceKey
}

// CacheConfig selects the response cache backend
type CacheConfig struct {
	Backend string      `mapstructure:"backend"` // memory, redis or none
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds Redis connection details for the redis cache backend
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// BookmarksConfig holds the bookmarks store connection details
type BookmarksConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}

// FilterConfig contains client-side listing filter definitions
type FilterConfig struct {
	DefaultExpression string            `mapstructure:"default"`
	Presets           map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
