package models

import "gorm.io/gorm"

// WordEntry is one accepted submission in a chain.
//
// MessageID is unique per game so a retried append of the same message is a
// no-op. Idx is unique per (game, guild) so two raced appends cannot both land
// at the same chain position.
type WordEntry struct {
	gorm.Model
	Game      string `gorm:"uniqueIndex:idx_game_message;uniqueIndex:idx_game_guild_idx"`
	Word      string
	Author    string
	MessageID string `gorm:"uniqueIndex:idx_game_message"`
	Idx       int    `gorm:"uniqueIndex:idx_game_guild_idx"`
	GuildID   string `gorm:"uniqueIndex:idx_game_guild_idx"`
}

// GuildConfig holds guild-wide settings. LogChannelID is the fallback log
// channel used when a game has no override of its own.
type GuildConfig struct {
	gorm.Model
	GuildID      string `gorm:"uniqueIndex"`
	LogChannelID string
}

// GameChannel binds one channel in a guild to a game, optionally with a
// game-specific log channel.
type GameChannel struct {
	gorm.Model
	GuildID      string `gorm:"uniqueIndex:idx_guild_game"`
	Game         string `gorm:"uniqueIndex:idx_guild_game"`
	ChannelID    string
	LogChannelID string
}
