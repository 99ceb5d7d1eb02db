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

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
app:
  env: production
  name: examwatch-backend
server:
  port: 9090
database:
  host: db.internal
  port: 3307
  user: exam
  password: secret
  name: examwatch
site:
  base_url: https://examwatch.in
  title: ExamWatch
redirects:
  - from: /notifications
    to: /search
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "exam:secret@tcp(db.internal:3307)/examwatch?charset=utf8mb4&parseTime=True&loc=Local", cfg.Database.DSN())
	assert.Equal(t, "https://examwatch.in", cfg.Site.BaseURL)
	require.Len(t, cfg.Redirects, 1)
	assert.Equal(t, "/notifications", cfg.Redirects[0].From)
	assert.Equal(t, "/search", cfg.Redirects[0].To)
}

func TestLoad_DefaultsFillGaps(t *testing.T) {
	path := writeConfig(t, "app:\n  env: local\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 24, cfg.JWT.ExpiryHours)
	assert.Equal(t, "ExamWatch", cfg.Site.Title)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("PORT", "3000")

	path := writeConfig(t, `
database:
  password: from-file
jwt:
  secret: file-secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
