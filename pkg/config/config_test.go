package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFile_Missing(t *testing.T) {
	cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NoError(t, err)
	assert.Empty(t, cfg)
}

func TestLoadConfigFile_Sections(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: ":9090"
  max_body_bytes: 1048576
guilded:
  bot_name: Octocat
  delivery_timeout: 3s
`)
	m, err := LoadConfigFile(path)
	require.NoError(t, err)

	cfg, err := LoadConfigFromMap(m)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, int64(1048576), cfg.MaxBodyBytes)
	assert.Equal(t, "Octocat", cfg.BotName)
	assert.Equal(t, 3*time.Second, cfg.DeliveryTimeout)
	assert.Empty(t, cfg.GuildedBaseURL)
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	path := writeConfig(t, "server: [unclosed")
	_, err := LoadConfigFile(path)
	assert.Error(t, err)
}

func TestLoadConfigFromMap_BadGuildedSection(t *testing.T) {
	_, err := LoadConfigFromMap(ConfigMap{"guilded": {"delivery_timeout": "soon"}})
	assert.Error(t, err)
}

func TestMergeConfig(t *testing.T) {
	primary := Config{BotName: "Octocat"}
	out := MergeConfig(primary, Defaults())
	assert.Equal(t, "Octocat", out.BotName)
	assert.Equal(t, DefaultHTTPAddr, out.HTTPAddr)
	assert.Equal(t, DefaultBotAvatarURL, out.BotAvatarURL)
	assert.Equal(t, DefaultDeliveryTimeout, out.DeliveryTimeout)
	assert.Equal(t, int64(DefaultMaxBodyBytes), out.MaxBodyBytes)
}

func TestLoad_FileOverridesEnv(t *testing.T) {
	t.Setenv("RELAY_HTTP_ADDR", ":7000")
	t.Setenv("RELAY_BOT_NAME", "FromEnv")
	t.Setenv("RELAY_DELIVERY_TIMEOUT", "2s")
	path := writeConfig(t, `
guilded:
  bot_name: FromFile
  base_url: https://guilded.example/
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTPAddr)
	assert.Equal(t, "FromFile", cfg.BotName)
	assert.Equal(t, "https://guilded.example", cfg.GuildedBaseURL)
	assert.Equal(t, 2*time.Second, cfg.DeliveryTimeout)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestGetHelpers(t *testing.T) {
	m := map[string]any{
		"num":   42,
		"str":   " 7 ",
		"float": 1.5,
		"name":  "  relay ",
	}

	n, ok := getInt64(m, "num")
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	n, ok = getInt64(m, "str")
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)

	n, ok = getInt64(m, "float")
	assert.True(t, ok)
	assert.Equal(t, int64(1), n)

	s, ok := getString(m, "missing", "name")
	assert.True(t, ok)
	assert.Equal(t, "relay", s)

	_, ok = getString(m, "missing")
	assert.False(t, ok)
}
