package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDerivesVaultPaths(t *testing.T) {
	cfg, err := New("/vault")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/vault", ".fathom", "fathom.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join("/vault", ".fathom", "catalog.yaml"), cfg.CatalogPath)
	assert.Equal(t, filepath.Join("/vault", ".fathom", "modules.yaml"), cfg.ModulesPath)
	assert.Equal(t, filepath.Join("/vault", "PDFs"), cfg.PDFDir)
	assert.Equal(t, DefaultUserID, cfg.UserID)
	assert.Equal(t, DefaultStoreTimeout, cfg.StoreTimeout)

	_, err = New("")
	assert.Error(t, err)
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("FATHOM_USER", "dad")
	t.Setenv("FATHOM_TIMEZONE", "UTC")
	t.Setenv("FATHOM_STORE_TIMEOUT_MS", "250")
	t.Setenv("FATHOM_LOG_LEVEL", "DEBUG")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "dad", cfg.UserID)
	assert.Equal(t, time.UTC.String(), cfg.Location.String())
	assert.Equal(t, 250*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadReadsDotEnvWithoutOverridingEnvironment(t *testing.T) {
	vault := t.TempDir()
	content := "FATHOM_HTTP_ADDR=:9999\nFATHOM_USER=from-file\n"
	require.NoError(t, os.WriteFile(filepath.Join(vault, ".env"), []byte(content), 0o644))
	t.Setenv("FATHOM_USER", "from-env")
	t.Setenv("FATHOM_HTTP_ADDR", "")
	os.Unsetenv("FATHOM_HTTP_ADDR")

	cfg, err := Load(vault)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "from-env", cfg.UserID)
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("FATHOM_TIMEZONE", "Mars/Olympus_Mons")
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}
