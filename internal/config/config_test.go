package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Serve.Port)
	assert.Equal(t, "https://api.openai.com", cfg.AI.BaseURL)
	assert.Equal(t, "gpt-3.5-turbo-16k", cfg.AI.Model)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, []string{"resumes"}, cfg.Parser.InputDirs)
	assert.Equal(t, "parsed", cfg.Parser.OutputDir)
	assert.Empty(t, cfg.Database.DSN)
}

func TestLoadFromYamlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
serve:
  port: 8080
ai:
  base_url: http://localhost:11434
  model: llama3
  timeout: 2m
database:
  dsn: postgres://localhost:5432/resumes
parser:
  input_dirs:
    - /data/docx
    - /data/pdf
  output_dir: /data/parsed
log:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Serve.Port)
	assert.Equal(t, "http://localhost:11434", cfg.AI.BaseURL)
	assert.Equal(t, "llama3", cfg.AI.Model)
	assert.Equal(t, 2*time.Minute, cfg.AI.Timeout)
	assert.Equal(t, "postgres://localhost:5432/resumes", cfg.Database.DSN)
	assert.Equal(t, []string{"/data/docx", "/data/pdf"}, cfg.Parser.InputDirs)
	assert.Equal(t, "/data/parsed", cfg.Parser.OutputDir)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("serve:\n  port: 8080\n"), 0o644))

	t.Setenv("RESUME_SERVE_PORT", "9090")
	t.Setenv("RESUME_AI_BASE__URL", "http://ai.internal:8000")
	t.Setenv("RESUME_AI_API__KEY", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Serve.Port)
	assert.Equal(t, "http://ai.internal:8000", cfg.AI.BaseURL)
	assert.Equal(t, "secret", cfg.AI.APIKey)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("RESUME_SERVE_PORT", "123456")

	_, err := Load("")
	assert.Error(t, err)
}

func TestEnvKeyMapping(t *testing.T) {
	for in, want := range map[string]string{
		"RESUME_SERVE_PORT":   "serve.port",
		"RESUME_AI_BASE__URL": "ai.base_url",
		"RESUME_LOG_LEVEL":    "log.level",
		"RESUME_DATABASE_DSN": "database.dsn",
	} {
		key, _ := envKey(in, "x")
		assert.Equal(t, want, key, in)
	}
}
