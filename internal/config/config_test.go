package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCredential(t *testing.T) {
	c := ResolveCredential("user-key", "env-key", "m")
	assert.Equal(t, "user-key", c.APIKey)
	assert.Equal(t, CredentialExplicit, c.Source)
	assert.Equal(t, "m", c.Model)

	c = ResolveCredential("   ", "env-key", "")
	assert.Equal(t, "env-key", c.APIKey)
	assert.Equal(t, CredentialEnvironment, c.Source)

	c = ResolveCredential("", "", "")
	assert.False(t, c.Present())
	assert.Equal(t, CredentialNone, c.Source)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("MAX_HINTS", "5")

	LoadConfig()
	require.NotNil(t, AppConfig)
	assert.Equal(t, "from-env", AppConfig.GeminiAPIKey)
	assert.Equal(t, 5, AppConfig.MaxHints)
	assert.Equal(t, "8080", AppConfig.Port)
	assert.Equal(t, CredentialEnvironment, AppConfig.DefaultCredential().Source)
}

func TestLoadConfigFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9090\nDB_DRIVER=sqlite\n"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	LoadConfig()
	assert.Equal(t, "9090", AppConfig.Port)
	assert.Equal(t, "sqlite", AppConfig.DBDriver)
	assert.Equal(t, 3, AppConfig.MaxHints)
}
