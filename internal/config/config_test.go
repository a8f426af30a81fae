package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/gommon/bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadConfig_CreatesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.FileExists(t, path)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:4000", cfg.GetServerAddr())
	assert.Equal(t, filepath.Join(dir, "uploads"), cfg.GetUploadDir())
	assert.Equal(t, time.Hour, cfg.StagingTTL())
	assert.Equal(t, 5*time.Minute, cfg.CleanupInterval())

	limits := cfg.UploadLimits()
	assert.Equal(t, int64(50<<20), limits.MaxFileSize)
	assert.Equal(t, int64(1<<20), limits.MaxFieldSize)
	assert.Equal(t, map[string]int{"resume": 1, "work_history": 1, "video": 1}, limits.Fields)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 8080
upload:
  maxFileSize: 10485760
storage:
  uploadsDirectory: /var/tmp/applications
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Server.EnableCORS)
	assert.Equal(t, "/var/tmp/applications", cfg.GetUploadDir())

	limits := cfg.UploadLimits()
	assert.Equal(t, int64(10<<20), limits.MaxFileSize)
	assert.Equal(t, int64(1<<20), limits.MaxFieldSize)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PORT", "9090")
	t.Setenv("UPLOADS_DIR", "/srv/staging")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := LoadConfig(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/srv/staging", cfg.GetUploadDir())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	t.Run("malformed yaml", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("server: [1, 2"), 0644))
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "failed to parse config file")
	})

	t.Run("bad size", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("upload:\n  maxFileSize: lots\n"), 0644))
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, `invalid size "lots"`)
	})

	t.Run("zero size", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("upload:\n  maxFieldSize: 0\n"), 0644))
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "upload.maxFieldSize must be positive")
	})

	t.Run("bad port", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 70000\n"), 0644))
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "server.port out of range")
	})
}

func TestSize_UnmarshalYAML(t *testing.T) {
	var out struct {
		Plain Size `yaml:"plain"`
		Unit  Size `yaml:"unit"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("plain: 2048\nunit: 4K\n"), &out))

	want, err := bytes.Parse("4K")
	require.NoError(t, err)
	assert.Equal(t, Size(2048), out.Plain)
	assert.Equal(t, Size(want), out.Unit)
	assert.Equal(t, "2048", out.Plain.String())

	err = yaml.Unmarshal([]byte("plain: [1]\n"), &out)
	assert.ErrorContains(t, err, "size must be a scalar")
}

func TestAllowedOrigins(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())

	cfg.Server.AllowOrigins = " http://localhost:5173 , https://jobs.example.com,"
	assert.Equal(t, []string{"http://localhost:5173", "https://jobs.example.com"}, cfg.AllowedOrigins())

	cfg.Server.AllowOrigins = ""
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("INTAKE_TEST_VALUE=from-dotenv\n"), 0644))
	t.Setenv("INTAKE_TEST_VALUE", "")
	os.Unsetenv("INTAKE_TEST_VALUE")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-dotenv", os.Getenv("INTAKE_TEST_VALUE"))
}
