package config

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvDefaults(t *testing.T) {
	t.Setenv("LOCAL_STORAGE_PATH", "")
	os.Unsetenv("LOCAL_STORAGE_PATH")
	t.Setenv("REDIS_ADDR", "")
	os.Unsetenv("REDIS_ADDR")

	cfg, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.StoragePath)
	assert.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("REDIS_DB", "not-an-int")

	_, err := ParseEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("WANDB_API_KEY", "")
	os.Unsetenv("WANDB_API_KEY")

	p := path.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("WANDB_API_KEY=secret\nLOCAL_STORAGE_PATH=/scratch\n"), 0600))
	t.Setenv("LOCAL_STORAGE_PATH", "/already/set")

	cfg, err := Load(p, path.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.WandbAPIKey)
	assert.Equal(t, "/already/set", cfg.StoragePath)
	os.Unsetenv("WANDB_API_KEY")
}
