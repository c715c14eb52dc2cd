package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "OPENAI_API_KEY", cfg.GenAI.APIKeyEnv)
	assert.Equal(t, "bank_db.sqlite", cfg.Store.Path)
	assert.Equal(t, "accounts", cfg.Router.BranchTopic)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("genai:\n  model: custom-model\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom-model", cfg.GenAI.Model)
	assert.Equal(t, 30, cfg.GenAI.TimeoutSecs)
	assert.Equal(t, "model_state", cfg.Model.StateDir)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{genai: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := defaultConfig()
	cfg.Router.BranchTopic = "branches"
	cfg.Router.RandomSeed = 7
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "branches", loaded.Router.BranchTopic)
	assert.Equal(t, int64(7), loaded.Router.RandomSeed)
}
