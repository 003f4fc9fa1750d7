package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the bot, loaded from the environment.
type Config struct {
	// BotToken is the Discord bot access token.
	BotToken string `env:"BOT_TOKEN"`

	// GuildID scopes slash-command registration to one guild when set.
	// Leave empty to register commands globally.
	GuildID string `env:"GUILD_ID"`

	// DBPath is the SQLite database file path.
	DBPath string `env:"DB_PATH" envDefault:"chaingame.db"`

	// MaintainerID is the Discord user pinged when a handler fails.
	MaintainerID string `env:"MAINTAINER_ID"`

	// TwiceExemptGuilds lists guilds where the consecutive-author rule
	// is not enforced.
	TwiceExemptGuilds []string `env:"TWICE_EXEMPT_GUILDS"`
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	// Ignore the error: a missing .env file just means plain env vars.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	return cfg, nil
}

// GuildExempt reports whether guildID may post twice in a row regardless of
// game rules.
func (cfg *Config) GuildExempt(guildID string) bool {
	for _, id := range cfg.TwiceExemptGuilds {
		if id == guildID {
			return true
		}
	}
	return false
}
