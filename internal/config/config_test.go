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
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("FullConfig", func(t *testing.T) {
		path := writeConfig(t, `
[server]
http_port = 9090
shutdown_timeout = 5

[database]
host = "db.local"
port = 5432
user = "cleaning"
password = "secret"
dbname = "cleaning_service"
sslmode = "disable"

[redis]
enabled = true
address = "redis.local:6379"

[logs]
level = "debug"

[metrics]
enabled = true
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.HTTPPort)
		assert.Equal(t, "db.local", cfg.Database.Host)
		assert.Contains(t, cfg.Database.DSN(), "host=db.local")
		assert.Contains(t, cfg.Database.DSN(), "dbname=cleaning_service")

		// Значения по умолчанию для незаполненных полей
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
		assert.Equal(t, "smc-cleaning-service", cfg.Metrics.ServiceName)
		assert.Equal(t, 60, cfg.Redis.CacheTTL)
	})

	t.Run("DefaultPort", func(t *testing.T) {
		path := writeConfig(t, `
[database]
host = "localhost"
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.HTTPPort)
		assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	})

	t.Run("MissingDatabaseHost", func(t *testing.T) {
		path := writeConfig(t, `
[server]
http_port = 8080
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})
}
