// Package config provides YAML-based configuration loading for antlog.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level antlog configuration, loaded from antlog.yaml.
type Config struct {
	Platform   string          `yaml:"platform"` // "discord" or "slack"
	Discord    DiscordConfig   `yaml:"discord"`
	Slack      SlackConfig     `yaml:"slack"`
	OCR        OCRConfig       `yaml:"ocr"`
	DB         DBConfig        `yaml:"db"`
	Dictionary string          `yaml:"dictionary"` // canonical entity names, one per line
	History    string          `yaml:"history"`    // kill-stat snapshot history (JSON lines)
	ImageDir   string          `yaml:"image_dir"`  // archival copies of ingested photos
	Dashboard  DashboardConfig `yaml:"dashboard"`
	Digest     DigestConfig    `yaml:"digest"`
}

// DiscordConfig holds Discord gateway credentials.
type DiscordConfig struct {
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

// SlackConfig holds Slack Socket Mode credentials.
type SlackConfig struct {
	AppToken  string `yaml:"app_token"`
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

// OCRConfig holds connection settings for the text-recognition service.
type OCRConfig struct {
	URL      string `yaml:"url"`
	APIKey   string `yaml:"api_key"`
	FolderID string `yaml:"folder_id"`
}

// DBConfig selects the storage backend.
type DBConfig struct {
	Driver string `yaml:"driver"` // "sqlite" or "mysql"
	Path   string `yaml:"path"`   // sqlite file path
	DSN    string `yaml:"dsn"`    // mysql DSN
}

// DashboardConfig holds settings for the review dashboard HTTP server.
type DashboardConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// DigestConfig schedules the periodic kill-stat digest post.
type DigestConfig struct {
	Enabled bool   `yaml:"enabled"`
	Cron    string `yaml:"cron"` // 5-field cron expression
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides secrets from the environment so tokens can stay out
// of the config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("ANTLOG_DISCORD_BOT_TOKEN"); v != "" {
		c.Discord.BotToken = v
	}
	if v := os.Getenv("ANTLOG_SLACK_APP_TOKEN"); v != "" {
		c.Slack.AppToken = v
	}
	if v := os.Getenv("ANTLOG_SLACK_BOT_TOKEN"); v != "" {
		c.Slack.BotToken = v
	}
	if v := os.Getenv("ANTLOG_OCR_API_KEY"); v != "" {
		c.OCR.APIKey = v
	}
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Platform == "" {
		c.Platform = "discord"
	}
	if c.DB.Driver == "" {
		c.DB.Driver = "sqlite"
	}
	if c.DB.Driver == "sqlite" && c.DB.Path == "" {
		c.DB.Path = "antlog.db"
	}
	if c.Dictionary == "" {
		c.Dictionary = "resource/dictionary.txt"
	}
	if c.History == "" {
		c.History = "stats.jsonl"
	}
	if c.ImageDir == "" {
		c.ImageDir = "img"
	}
	if c.Dashboard.Port == 0 {
		c.Dashboard.Port = 8080
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.Platform {
	case "discord":
		if c.Discord.BotToken == "" {
			errs = append(errs, "discord.bot_token is required")
		}
	case "slack":
		if c.Slack.AppToken == "" {
			errs = append(errs, "slack.app_token is required")
		}
		if c.Slack.BotToken == "" {
			errs = append(errs, "slack.bot_token is required")
		}
	default:
		errs = append(errs, fmt.Sprintf("platform must be discord or slack, got %q", c.Platform))
	}
	switch c.DB.Driver {
	case "sqlite":
	case "mysql":
		if c.DB.DSN == "" {
			errs = append(errs, "db.dsn is required for the mysql driver")
		}
	default:
		errs = append(errs, fmt.Sprintf("db.driver must be sqlite or mysql, got %q", c.DB.Driver))
	}
	if c.OCR.URL == "" {
		errs = append(errs, "ocr.url is required")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
