package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_CreatesDefault(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("VAULT_DB_DRIVER", "")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "vault.config")

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	_, err = os.Stat(configPath)
	assert.NoError(t, err, "default config file should be written")

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Storage.DatabaseDriver)
	assert.Equal(t, 85, cfg.Compression.Quality)
	assert.True(t, cfg.Compression.Optimize)
	assert.Equal(t, ".", cfg.GetArtifactDir())
	assert.Equal(t, filepath.Join(tmpDir, "soulfile.db"), cfg.Storage.DatabasePath)
	assert.Equal(t, filepath.Join(tmpDir, "symbols.csv"), cfg.Storage.SymbolsFile)

	// The written file round-trips
	again, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server, again.Server)
	assert.Equal(t, cfg.Storage, again.Storage)
	assert.Equal(t, cfg.Compression, again.Compression)
}

func TestLoadConfig_XML(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("VAULT_DB_DRIVER", "")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "vault.config")
	content := `<?xml version="1.0" encoding="UTF-8"?>
<SoulfileVault>
  <Server>
    <Port>9001</Port>
  </Server>
  <Storage>
    <DataDirectory>data</DataDirectory>
    <DatabaseDriver>duckdb</DatabaseDriver>
    <DatabasePath>vault.duckdb</DatabasePath>
  </Storage>
  <Compression>
    <Quality>70</Quality>
  </Compression>
</SoulfileVault>`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "duckdb", cfg.Storage.DatabaseDriver)
	assert.Equal(t, filepath.Join(tmpDir, "data"), cfg.GetDataDir())
	assert.Equal(t, filepath.Join(tmpDir, "data", "vault.duckdb"), cfg.Storage.DatabasePath)
	assert.Equal(t, 70, cfg.Compression.Quality)
	// Untouched sections keep defaults
	assert.Equal(t, "symbols.csv", filepath.Base(cfg.Storage.SymbolsFile))
	assert.Equal(t, "2G", cfg.Server.BodyLimit)
}

func TestLoadConfig_YAML(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("VAULT_DB_DRIVER", "")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "vault.yaml")
	content := `
server:
  port: 8181
storage:
  symbols_file: "/tmp/symbols-test.csv"
compression:
  quality: 60
  optimize: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "/tmp/symbols-test.csv", cfg.Storage.SymbolsFile)
	assert.Equal(t, 60, cfg.Compression.Quality)
	assert.False(t, cfg.Compression.Optimize)
	assert.Equal(t, "sqlite", cfg.Storage.DatabaseDriver)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("DATA_DIR", "")
	t.Setenv("VAULT_DB_DRIVER", "duckdb")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "vault.config"))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "duckdb", cfg.Storage.DatabaseDriver)
}

func TestLoadConfig_InvalidXML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "vault.config")
	require.NoError(t, os.WriteFile(configPath, []byte("<SoulfileVault><Server>"), 0644))

	_, err := LoadConfig(configPath)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(c *AppConfig)
		expectedErrs int
		field        string
	}{
		{
			name:         "defaults are valid",
			mutate:       func(c *AppConfig) {},
			expectedErrs: 0,
		},
		{
			name:         "unknown driver",
			mutate:       func(c *AppConfig) { c.Storage.DatabaseDriver = "postgres" },
			expectedErrs: 1,
			field:        "Storage.DatabaseDriver",
		},
		{
			name:         "quality out of range",
			mutate:       func(c *AppConfig) { c.Compression.Quality = 0 },
			expectedErrs: 1,
			field:        "Compression.Quality",
		},
		{
			name:         "bad port",
			mutate:       func(c *AppConfig) { c.Server.Port = 70000 },
			expectedErrs: 1,
			field:        "Server.Port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			errs := cfg.Validate()
			assert.Len(t, errs, tt.expectedErrs)
			if tt.field != "" && len(errs) > 0 {
				assert.Equal(t, tt.field, errs[0].Field)
			}
		})
	}
}
