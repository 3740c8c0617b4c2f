package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadWithViper(t *testing.T, path string) Config {
	t.Helper()
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg
}

func TestSetValue_CreatesNewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SetValue(configPath, "search.url", "https://duckduckgo.com/?q="))

	cfg := loadWithViper(t, configPath)
	assert.Equal(t, "https://duckduckgo.com/?q=", cfg.Search.URL)
}

func TestSetValue_PreservesComments(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(configPath))

	require.NoError(t, SetValue(configPath, "store.backend", "toml"))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# tagsearch configuration")
	assert.Contains(t, string(data), "# Show the number of saved searches in the title")

	cfg := loadWithViper(t, configPath)
	assert.Equal(t, BackendTOML, cfg.Store.Backend)
	assert.True(t, cfg.UI.ShowCounts, "other settings untouched")
}

func TestSetValue_TypedValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(configPath))

	require.NoError(t, SetValue(configPath, "ui.show_counts", "F"))
	require.NoError(t, SetValue(configPath, "tracing.enabled", "true"))
	require.NoError(t, SetValue(configPath, "tracing.sample_rate", "0.25"))
	require.NoError(t, SetValue(configPath, "flags.strict-tags", "true"))
	require.NoError(t, SetValue(configPath, "search.share_subject", "true"))

	cfg := loadWithViper(t, configPath)
	assert.False(t, cfg.UI.ShowCounts)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, 0.25, cfg.Tracing.SampleRate)
	assert.True(t, cfg.Flags["strict-tags"])
	assert.Equal(t, "true", cfg.Search.ShareSubject, "string keys keep string type")
}

func TestSetValue_ShareMessageWithColon(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SetValue(configPath, "search.share_message", "Results: %s #search"))

	cfg := loadWithViper(t, configPath)
	assert.Equal(t, "Results: %s #search", cfg.Search.ShareMessage)
}

func TestSetValue_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "unknown key", key: "theme.color", value: "x", wantErr: "unknown config key"},
		{name: "section key", key: "store", value: "x", wantErr: "unknown config key"},
		{name: "empty flag", key: "flags.", value: "true", wantErr: "unknown config key"},
		{name: "bad bool", key: "auto_refresh", value: "maybe", wantErr: "true or false"},
		{name: "bad float", key: "tracing.sample_rate", value: "lots", wantErr: "must be a number"},
		{name: "rate out of range", key: "tracing.sample_rate", value: "2", wantErr: "sample_rate"},
		{name: "bad backend", key: "store.backend", value: "redis", wantErr: "store.backend"},
		{name: "bad url", key: "search.url", value: "not a url", wantErr: "search.url"},
		{name: "message without verb", key: "search.share_message", value: "hi", wantErr: "exactly one"},
		{name: "bad style", key: "ui.markdown_style", value: "neon", wantErr: "dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			err := SetValue(configPath, tt.key, tt.value)
			require.ErrorContains(t, err, tt.wantErr)

			_, statErr := os.Stat(configPath)
			require.ErrorIs(t, statErr, os.ErrNotExist, "nothing written on rejection")
		})
	}
}

func TestSetValue_ScalarInTheWay(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("ui: compact\n"), 0o600))

	err := SetValue(configPath, "ui.show_counts", "true")
	require.ErrorContains(t, err, "not a section")
}

func TestSettableKeys_Sorted(t *testing.T) {
	keys := SettableKeys()
	require.Contains(t, keys, "search.url")
	require.Contains(t, keys, "flags.<name>")
	require.IsIncreasing(t, keys)
}
