package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 8, cfg.Server.BodyLimitMB)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "schemadiff", cfg.Storage.Bucket)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Compare.CaseSensitive)
	assert.Equal(t, -1, cfg.Compare.MaxTableCommentLength)
	assert.NotContains(t, cfg.Compare.Options(), "maxTableCommentLength")
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "COMPARE_CASE_SENSITIVE=false\nCOMPARE_MAX_TABLE_COMMENT_LENGTH=60\nDATABASE_HOST=db.internal\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("COMPARE_CASE_SENSITIVE")
		os.Unsetenv("COMPARE_MAX_TABLE_COMMENT_LENGTH")
		os.Unsetenv("DATABASE_HOST")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.False(t, cfg.Compare.CaseSensitive)
	assert.Equal(t, 60, cfg.Compare.MaxTableCommentLength)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}
