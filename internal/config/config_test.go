package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.App.Port)
	require.Equal(t, 1, cfg.Rating.Min)
	require.Equal(t, 5, cfg.Rating.Max)
	require.True(t, cfg.Redis.Enabled)
	require.Equal(t, "chat.message.persist", cfg.RabbitMQ.MessagePersistQueue)
	require.Equal(t, []string{"*"}, cfg.App.AllowedOrigins)
}

func TestLoad_FileThenEnv(t *testing.T) {
	chdir(t, t.TempDir())
	path := writeConfig(t, `
[app]
port = 9000

[mysql]
db = "from_file"

[redis]
enabled = false

[rating]
min = 0
max = 10
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MYSQL_DB", "from_env")
	t.Setenv("RATING_MIN", "1")
	t.Setenv("LOG_JSON", "false")
	t.Setenv("APP_PORT", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9000, cfg.App.Port)
	require.Equal(t, "from_env", cfg.MySQL.DB)
	require.False(t, cfg.Redis.Enabled)
	require.Equal(t, 1, cfg.Rating.Min)
	require.Equal(t, 10, cfg.Rating.Max)
	require.False(t, cfg.Log.JSON)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
	require.Equal(t, "root:@tcp(127.0.0.1:3306)/from_env?parseTime=true&loc=Local&charset=utf8mb4", cfg.MySQLDSN())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REDIS_ADDR=cache.internal:6380\n"), 0o600))
	t.Setenv("CONFIG_FILE", filepath.Join(dir, "missing.toml"))
	// registered so t.Setenv restores the variable after godotenv sets it
	t.Setenv("REDIS_ADDR", "")
	require.NoError(t, os.Unsetenv("REDIS_ADDR"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "cache.internal:6380", cfg.Redis.Addr)
}

func TestLoad_InvalidRatingRange(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("RATING_MIN", "4")
	t.Setenv("RATING_MAX", "2")

	_, err := Load()
	require.Error(t, err)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
