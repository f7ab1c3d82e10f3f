package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

// AppEnv represents the application environment
// ENUM(local,production,development,testing)
type AppEnv string

type Config struct {
	TelegramBotToken string `koanf:"telegram_bot_token"`
	TelegramAPIURL   string `koanf:"telegram_api_url"`
	StoragePath      string `koanf:"storage_path"`
	HTTPPort         string `koanf:"http_port"`
	AppEnv           AppEnv `koanf:"app_env"`

	// Suspicious channel keywords checked against bios and channel names.
	SuspiciousKeywords []string `koanf:"suspicious_keywords"`

	CheckNewMembers         bool   `koanf:"check_new_members"`
	EnableNsfwDetection     bool   `koanf:"enable_nsfw_detection"`
	AutoBanNsfwOnJoin       bool   `koanf:"auto_ban_nsfw_on_join"`
	AutoBanSuspiciousOnJoin bool   `koanf:"auto_ban_suspicious_on_join"`
	AutoBanAction           string `koanf:"auto_ban_action"` // ban, kick or mute
	SilentMode              bool   `koanf:"silent_mode"`

	ReactionScanProbability float64 `koanf:"reaction_scan_probability"`
	MessageScanProbability  float64 `koanf:"message_scan_probability"`

	ActivityRetentionDays int `koanf:"activity_retention_days"`

	DefaultWarningLimit int    `koanf:"default_warning_limit"`
	DefaultPenalty      string `koanf:"default_penalty"` // applied when the warning limit is exceeded
}

// DefaultSuspiciousKeywords covers the promotional, dating, gambling and NSFW
// channel names the bot flags out of the box. Chats can override the list via
// the suspicious_keywords config key.
var DefaultSuspiciousKeywords = []string{
	// Promotional/Marketing
	"promo", "promotion", "marketing", "advertisement", "ads", "sponsored",
	// Dating/Romance
	"dating", "girls", "boys", "relationship", "love", "meet",
	// Gambling/Finance
	"casino", "lottery", "betting", "crypto", "bitcoin", "investment",
	// NSFW adjacent
	"nsfw", "18+", "adult", "onlyfans", "+18", "sussy", "secret place",
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load config file from various formats
	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	// Use lo.Find to find the first existing config file
	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Load environment variables (they override config file values)
	// Convert TELEGRAM_BOT_TOKEN -> telegram_bot_token
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	setDefaults(k)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// Keyword lists can arrive as a comma-separated string from env vars or
	// as a slice from config files.
	if keywords := k.Get("suspicious_keywords"); keywords != nil {
		switch v := keywords.(type) {
		case string:
			cfg.SuspiciousKeywords = ParseKeywordList(v)
		case []interface{}:
			cfg.SuspiciousKeywords = lo.FilterMap(v, func(item interface{}, _ int) (string, bool) {
				s, ok := item.(string)
				return s, ok && s != ""
			})
		}
	}
	if len(cfg.SuspiciousKeywords) == 0 {
		cfg.SuspiciousKeywords = DefaultSuspiciousKeywords
	}

	if appEnvStr := k.String("app_env"); appEnvStr != "" {
		if appEnv, err := ParseAppEnv(appEnvStr); err == nil {
			cfg.AppEnv = appEnv
		} else {
			cfg.AppEnv = AppEnvProduction
		}
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(k *koanf.Koanf) {
	defaults := map[string]interface{}{
		"telegram_api_url":            "https://api.telegram.org",
		"storage_path":                "./data",
		"http_port":                   "8080",
		"app_env":                     "production",
		"check_new_members":           true,
		"enable_nsfw_detection":       true,
		"auto_ban_nsfw_on_join":       true,
		"auto_ban_suspicious_on_join": true,
		"auto_ban_action":             "ban",
		"silent_mode":                 true,
		"reaction_scan_probability":   0.2,
		"message_scan_probability":    0.1,
		"activity_retention_days":     7,
		"default_warning_limit":       0,
		"default_penalty":             "kick",
	}
	for key, value := range defaults {
		if !k.Exists(key) {
			k.Set(key, value)
		}
	}
}

func (c *Config) validate() error {
	if c.TelegramBotToken == "" {
		return ErrMissingBotToken
	}
	if !validAction(c.AutoBanAction) {
		return oops.With("auto_ban_action", c.AutoBanAction).Errorf("auto_ban_action must be ban, kick or mute")
	}
	if !validAction(c.DefaultPenalty) {
		return oops.With("default_penalty", c.DefaultPenalty).Errorf("default_penalty must be ban, kick or mute")
	}
	if c.ReactionScanProbability < 0 || c.ReactionScanProbability > 1 {
		return oops.With("reaction_scan_probability", c.ReactionScanProbability).Errorf("scan probabilities must be within [0, 1]")
	}
	if c.MessageScanProbability < 0 || c.MessageScanProbability > 1 {
		return oops.With("message_scan_probability", c.MessageScanProbability).Errorf("scan probabilities must be within [0, 1]")
	}
	if c.ActivityRetentionDays <= 0 {
		return oops.With("activity_retention_days", c.ActivityRetentionDays).Errorf("activity_retention_days must be positive")
	}
	return nil
}

func validAction(s string) bool {
	switch s {
	case "ban", "kick", "mute":
		return true
	}
	return false
}

// ParseKeywordList parses a comma-separated keyword string into a slice using lo
func ParseKeywordList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	return lo.FilterMap(parts, func(part string, _ int) (string, bool) {
		part = strings.TrimSpace(part)
		return part, part != ""
	})
}
