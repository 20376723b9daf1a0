package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "/", cfg.BasePath)
	assert.Equal(t, "content/posts", cfg.ContentDir)
	assert.Equal(t, "dist", cfg.OutputDir)
	assert.False(t, cfg.IncludeDrafts)
	assert.False(t, cfg.SMTPConfigured())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "folio.yaml"), []byte(`
addr: ":9090"
base_path: "folio/"
include_drafts: true
smtp:
  user: relay@example.com
  pass: secret
`), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	// Base path gains a leading slash and loses the trailing one.
	assert.Equal(t, "/folio", cfg.BasePath)
	assert.True(t, cfg.IncludeDrafts)
	assert.True(t, cfg.SMTPConfigured())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_ADDR", ":7070")
	t.Setenv("FOLIO_SMTP_USER", "env@example.com")
	t.Setenv("FOLIO_SMTP_PASS", "env-secret")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr)
	assert.True(t, cfg.SMTPConfigured())
	assert.Equal(t, "env@example.com", cfg.SMTP.User)
}
