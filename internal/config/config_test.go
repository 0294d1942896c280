package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"oraflake/pkg/models"
)

func TestGetConfigPath(t *testing.T) {
	t.Setenv("ORAFLAKE_CONFIG", "")
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".oraflake")
	assert.Equal(t, expected, GetConfigPath())
}

func TestGetConfigFileEnvOverride(t *testing.T) {
	t.Setenv("ORAFLAKE_CONFIG", "/tmp/custom/config.yaml")
	assert.Equal(t, "/tmp/custom/config.yaml", GetConfigFile())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("ORAFLAKE_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "view", cfg.Migration.Materialization)
	assert.Equal(t, "id", cfg.Migration.UniqueKey)
	assert.True(t, cfg.Migration.WriteSummary)
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("ORAFLAKE_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))

	testConfig := &models.Config{
		Snowflake: models.Snowflake{
			Account:   "test123.us-east-1",
			Username:  "testuser",
			Password:  "testpass",
			Role:      "TESTROLE",
			Warehouse: "TEST_WH",
			Database:  "TEST_DB",
			Schema:    "PUBLIC",
		},
		Migration: models.Migration{
			SourceDir:       "oracle_sql",
			OutputDir:       "models",
			Materialization: "incremental",
			UniqueKey:       "order_id",
			WriteSummary:    true,
		},
	}

	require.NoError(t, Save(testConfig))
	assert.True(t, Exists())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, testConfig.Snowflake, loaded.Snowflake)
	assert.Equal(t, "incremental", loaded.Migration.Materialization)
	assert.Equal(t, "order_id", loaded.Migration.UniqueKey)
}

func TestSavePermissions(t *testing.T) {
	t.Setenv("ORAFLAKE_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))

	require.NoError(t, Save(&models.Config{}))

	info, err := os.Stat(GetConfigFile())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
