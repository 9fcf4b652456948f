package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
tourapi:
  service_key: file-key
  rate_limit: 5
cache:
  backend: memory
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.TourAPI.ServiceKey)
	assert.Equal(t, 5.0, cfg.TourAPI.RateLimit)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	// Defaults fill the rest.
	assert.Equal(t, "https://apis.data.go.kr/B551011/KorService2", cfg.TourAPI.BaseURL)
	assert.Equal(t, 3, cfg.TourAPI.MaxRetries)
	assert.Equal(t, 10, cfg.TourAPI.TimeoutSeconds)
	assert.Equal(t, "memory", cfg.Cache.Backend)
}

func TestLoadServiceKeyFromEnvironment(t *testing.T) {
	t.Setenv("TOUR_API_KEY", "env-key")
	t.Setenv("TOUR_API_KEY_SERVER", "env-server-key")

	path := writeConfig(t, `
logging:
  level: info
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.TourAPI.ServiceKey)
	assert.Equal(t, "env-server-key", cfg.TourAPI.ServerServiceKey)
}

func TestLoadRejectsMissingServiceKey(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: info
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service_key")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name: "bad log level",
			content: `
tourapi:
  service_key: k
logging:
  level: loud
`,
			errMsg: "invalid logging level",
		},
		{
			name: "bad log format",
			content: `
tourapi:
  service_key: k
logging:
  format: xml
`,
			errMsg: "invalid logging format",
		},
		{
			name: "bad cache backend",
			content: `
tourapi:
  service_key: k
cache:
  backend: memcached
`,
			errMsg: "invalid cache backend",
		},
		{
			name: "bookmarks without dsn",
			content: `
tourapi:
  service_key: k
bookmarks:
  enabled: true
`,
			errMsg: "bookmarks.dsn",
		},
		{
			name: "negative retries",
			content: `
tourapi:
  service_key: k
  max_retries: -1
`,
			errMsg: "max_retries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestResolveServiceKey(t *testing.T) {
	withServer := TourAPIConfig{ServiceKey: "general", ServerServiceKey: "server-only"}
	assert.Equal(t, "server-only", withServer.ResolveServiceKey(ExecServer))
	assert.Equal(t, "general", withServer.ResolveServiceKey(ExecClient))

	// Without a server-only key, server contexts fall back to the
	// general key.
	withoutServer := TourAPIConfig{ServiceKey: "general"}
	assert.Equal(t, "general", withoutServer.ResolveServiceKey(ExecServer))
	assert.Equal(t, "general", withoutServer.ResolveServiceKey(ExecClient))
}
