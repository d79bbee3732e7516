package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mywio/guilded-relay/pkg/core"
	"gopkg.in/yaml.v3"
)

const (
	DefaultHTTPAddr        = ":8080"
	DefaultBotName         = "GitHub"
	DefaultBotAvatarURL    = "https://cdn.gilcdn.com/UserAvatar/3f8e4273b8b9dcacd57379a637a773f4-Large.png"
	DefaultGuildedBaseURL  = "https://media.guilded.gg"
	DefaultDeliveryTimeout = 15 * time.Second
	DefaultMaxBodyBytes    = 25 << 20
	DefaultLogLevel        = "info"
)

type Config struct {
	HTTPAddr        string
	BotName         string
	BotAvatarURL    string
	GuildedBaseURL  string
	DeliveryTimeout time.Duration
	MaxBodyBytes    int64
	LogLevel        string
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		HTTPAddr:        DefaultHTTPAddr,
		BotName:         DefaultBotName,
		BotAvatarURL:    DefaultBotAvatarURL,
		GuildedBaseURL:  DefaultGuildedBaseURL,
		DeliveryTimeout: DefaultDeliveryTimeout,
		MaxBodyBytes:    DefaultMaxBodyBytes,
		LogLevel:        DefaultLogLevel,
	}
}

// LoadConfig reads the RELAY_* environment variables. Unset values stay zero so
// they can be merged with a config file.
func LoadConfig() Config {
	timeout, _ := time.ParseDuration(os.Getenv("RELAY_DELIVERY_TIMEOUT"))
	maxBody, _ := strconv.ParseInt(strings.TrimSpace(os.Getenv("RELAY_MAX_BODY_BYTES")), 10, 64)

	return Config{
		HTTPAddr:        os.Getenv("RELAY_HTTP_ADDR"),
		BotName:         os.Getenv("RELAY_BOT_NAME"),
		BotAvatarURL:    os.Getenv("RELAY_BOT_AVATAR_URL"),
		GuildedBaseURL:  os.Getenv("RELAY_GUILDED_BASE_URL"),
		DeliveryTimeout: timeout,
		MaxBodyBytes:    maxBody,
		LogLevel:        os.Getenv("RELAY_LOG_LEVEL"),
	}
}

// ConfigMap is a sectioned configuration map keyed by section name ("server", "guilded").
// Values are YAML-friendly scalars or nested maps/lists.
type ConfigMap map[string]map[string]any

// LoadConfigFile loads a YAML config file from disk.
// Returns an empty map if the file does not exist or is empty.
func LoadConfigFile(path string) (ConfigMap, error) {
	if path == "" {
		return ConfigMap{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ConfigMap{}, nil
		}
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return ConfigMap{}, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return normalizeConfigMap(raw), nil
}

type guildedSection struct {
	BaseURL         string        `yaml:"base_url"`
	BotName         string        `yaml:"bot_name"`
	BotAvatarURL    string        `yaml:"bot_avatar_url"`
	DeliveryTimeout time.Duration `yaml:"delivery_timeout"`
}

// LoadConfigFromMap builds a Config from the "server" and "guilded" sections.
//
//	server:  http_addr, max_body_bytes, log_level
//	guilded: base_url, bot_name, bot_avatar_url, delivery_timeout
func LoadConfigFromMap(m ConfigMap) (Config, error) {
	cfg := Config{}

	if server, ok := m["server"]; ok {
		if v, ok := getString(server, "http_addr", "addr"); ok {
			cfg.HTTPAddr = v
		}
		if v, ok := getInt64(server, "max_body_bytes"); ok {
			cfg.MaxBodyBytes = v
		}
		if v, ok := getString(server, "log_level"); ok {
			cfg.LogLevel = v
		}
	}

	var g guildedSection
	if err := core.DecodeConfigSection(m["guilded"], &g); err != nil {
		return cfg, fmt.Errorf("guilded section: %w", err)
	}
	cfg.GuildedBaseURL = g.BaseURL
	cfg.BotName = g.BotName
	cfg.BotAvatarURL = g.BotAvatarURL
	cfg.DeliveryTimeout = g.DeliveryTimeout

	return cfg, nil
}

// MergeConfig uses primary values when set, otherwise falls back.
func MergeConfig(primary, fallback Config) Config {
	out := primary
	if out.HTTPAddr == "" {
		out.HTTPAddr = fallback.HTTPAddr
	}
	if out.BotName == "" {
		out.BotName = fallback.BotName
	}
	if out.BotAvatarURL == "" {
		out.BotAvatarURL = fallback.BotAvatarURL
	}
	if out.GuildedBaseURL == "" {
		out.GuildedBaseURL = fallback.GuildedBaseURL
	}
	if out.DeliveryTimeout == 0 {
		out.DeliveryTimeout = fallback.DeliveryTimeout
	}
	if out.MaxBodyBytes == 0 {
		out.MaxBodyBytes = fallback.MaxBodyBytes
	}
	if out.LogLevel == "" {
		out.LogLevel = fallback.LogLevel
	}
	return out
}

// Load resolves the effective configuration: file values win over environment
// values, which win over defaults.
func Load(path string) (Config, error) {
	cfg := MergeConfig(LoadConfig(), Defaults())
	fileMap, err := LoadConfigFile(path)
	if err != nil {
		return cfg, err
	}
	fileCfg, err := LoadConfigFromMap(fileMap)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg = MergeConfig(fileCfg, cfg)
	cfg.GuildedBaseURL = strings.TrimRight(cfg.GuildedBaseURL, "/")
	return cfg, nil
}

func normalizeConfigMap(raw map[string]any) ConfigMap {
	out := ConfigMap{}
	for key, value := range raw {
		if m := normalizeStringMap(value); m != nil {
			out[key] = m
		}
	}
	return out
}

func normalizeStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := map[string]any{}
		for k, v := range t {
			out[k] = normalizeValue(v)
		}
		return out
	case map[any]any:
		out := map[string]any{}
		for k, v := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = normalizeValue(v)
		}
		return out
	default:
		return nil
	}
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return normalizeStringMap(t)
	case []any:
		out := make([]any, 0, len(t))
		for _, item := range t {
			out = append(out, normalizeValue(item))
		}
		return out
	default:
		return v
	}
}

func getString(m map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			switch t := v.(type) {
			case string:
				return strings.TrimSpace(t), true
			default:
				return strings.TrimSpace(fmt.Sprint(t)), true
			}
		}
	}
	return "", false
}

func getInt64(m map[string]any, keys ...string) (int64, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			switch t := v.(type) {
			case int:
				return int64(t), true
			case int64:
				return t, true
			case float64:
				return int64(t), true
			case string:
				n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
				if err == nil {
					return n, true
				}
			}
		}
	}
	return 0, false
}
