package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, 30*time.Second, c.TimeoutDuration())
	assert.True(t, c.GetFollowRedirects())
	assert.True(t, c.GetValidateSSL())
	assert.False(t, c.GetVerbose())
	assert.True(t, c.IsDefault())
}

func TestGetBool_NilDefaults(t *testing.T) {
	c := &Config{}
	assert.True(t, c.GetFollowRedirects())
	assert.True(t, c.GetValidateSSL())
	assert.False(t, c.GetNoColor())
	assert.False(t, c.GetNoHistory())
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	base.Headers = map[string]string{"Accept": "application/json"}

	merged := base.Merge(&Config{
		Timeout:     5000,
		ValidateSSL: BoolPtr(false),
		Headers:     map[string]string{"User-Agent": "pathpick"},
		OperatorURL: "https://operator.example.com",
	})

	assert.Equal(t, 5000, merged.Timeout)
	assert.False(t, merged.GetValidateSSL())
	assert.True(t, merged.GetFollowRedirects(), "unset bools keep the base value")
	assert.Equal(t, "https://operator.example.com", merged.OperatorURL)
	assert.Equal(t, map[string]string{"Accept": "application/json", "User-Agent": "pathpick"}, merged.Headers)
	assert.Len(t, base.Headers, 1, "merge does not modify the receiver")

	assert.Same(t, base, base.Merge(nil))
}

func TestFindAndLoadConfig_JSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pathpick.json"), []byte(`{
		"timeout": 1500,
		"followRedirects": false,
		"headers": {"X-Client": "pathpick"},
		"manifestDir": "deployed"
	}`), 0644))

	c, err := FindAndLoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 1500, c.Timeout)
	assert.False(t, c.GetFollowRedirects())
	assert.True(t, c.GetValidateSSL())
	assert.Equal(t, "deployed", c.ManifestDir)
	assert.Equal(t, "pathpick", c.Headers["x-client"], "header names are case-insensitive")
	assert.Equal(t, 10, c.MaxRedirects)
	assert.Equal(t, filepath.Join(dir, ".pathpick.json"), FoundConfigFile(dir))
}

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("operatorUrl: http://op.local:5000\nsampleRate: 2.5\nnoHistory: true\n"), 0644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://op.local:5000", c.OperatorURL)
	assert.Equal(t, 2.5, c.SampleRate)
	assert.True(t, c.GetNoHistory())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pathpick.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"timeout": 1500, "proxy": "http://file-proxy:8080"}`), 0644))

	t.Setenv("PATHPICK_TIMEOUT", "2500")
	t.Setenv("PATHPICK_VALIDATE_SSL", "false")
	t.Setenv("PATHPICK_OPERATOR_URL", "https://env-operator.example.com")

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2500, c.Timeout)
	assert.False(t, c.GetValidateSSL())
	assert.Equal(t, "https://env-operator.example.com", c.OperatorURL)
	assert.Equal(t, "http://file-proxy:8080", c.Proxy)
}

func TestFindAndLoadConfig_NoFile(t *testing.T) {
	c, err := FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.True(t, c.IsDefault())
	assert.Empty(t, FoundConfigFile(t.TempDir()))
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"timeout": `), 0644))
	_, err = LoadConfig(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathpick.config.json")
	c := DefaultConfig()
	c.Proxy = "http://proxy:3128"
	require.NoError(t, c.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://proxy:3128", loaded.Proxy)
	assert.Equal(t, c.Timeout, loaded.Timeout)
}
