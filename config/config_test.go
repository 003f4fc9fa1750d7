package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("TWICE_EXEMPT_GUILDS", "guild-1,guild-2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "token", cfg.BotToken)
	assert.Equal(t, "chaingame.db", cfg.DBPath)
	assert.Equal(t, []string{"guild-1", "guild-2"}, cfg.TwiceExemptGuilds)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestGuildExempt(t *testing.T) {
	cfg := &Config{TwiceExemptGuilds: []string{"guild-1"}}
	assert.True(t, cfg.GuildExempt("guild-1"))
	assert.False(t, cfg.GuildExempt("guild-2"))

	empty := &Config{}
	assert.False(t, empty.GuildExempt("guild-1"))
}
