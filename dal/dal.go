package dal

import (
	"errors"
	"log"

	"github.com/RedGuy12/ChainGameBot/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrChannelInUse is returned when a channel is already bound to a different
// game in the same guild.
var ErrChannelInUse = errors.New("channel is already in use by another game")

// InitDB creates and returns a database connection.
func InitDB(dbPath string) *gorm.DB {
	db, err := gorm.Open(
		sqlite.Open(dbPath),
		&gorm.Config{},
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	log.Println("Connected to database.")

	db.AutoMigrate(&models.WordEntry{}, &models.GuildConfig{}, &models.GameChannel{})
	log.Println("Migrated database.")

	return db
}

// LastWord returns the entry with the highest index for the given guild and
// game, or nil if the chain is empty.
func LastWord(game string, guildID string, db *gorm.DB) (*models.WordEntry, error) {
	var entry models.WordEntry
	err := db.Where(
		&models.WordEntry{Game: game, GuildID: guildID},
	).Order("idx DESC").Take(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// FindWord returns the entry for the given word in the given guild and game,
// or nil if the word has not been used.
func FindWord(game string, guildID string, word string, db *gorm.DB) (*models.WordEntry, error) {
	var entry models.WordEntry
	err := db.Where(
		&models.WordEntry{Game: game, GuildID: guildID, Word: word},
	).Take(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// DeleteWordEntry removes an entry whose originating message no longer
// exists, so it can't trigger duplicate rejections again. The row is removed
// outright: a soft-deleted row would still hold its chain position under the
// index uniqueness constraint.
func DeleteWordEntry(entry *models.WordEntry, db *gorm.DB) error {
	return db.Unscoped().Delete(entry).Error
}

// AppendWord inserts the given entry, doing nothing if an entry with the same
// message ID already exists for the game. A retried append is therefore a
// no-op rather than a duplicate chain position.
func AppendWord(entry models.WordEntry, db *gorm.DB) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game"}, {Name: "message_id"}},
		DoNothing: true,
	}).Create(&entry).Error
}

// GameForChannel returns the name of the game bound to the given channel, or
// "" if the channel hosts no game.
func GameForChannel(guildID string, channelID string, db *gorm.DB) (string, error) {
	var binding models.GameChannel
	err := db.Where(
		&models.GameChannel{GuildID: guildID, ChannelID: channelID},
	).Take(&binding).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return binding.Game, nil
}

// ChannelForGame returns the channel bound to the given game in the guild, or
// "" if the game is not set up there.
func ChannelForGame(guildID string, game string, db *gorm.DB) (string, error) {
	var binding models.GameChannel
	err := db.Where(
		&models.GameChannel{GuildID: guildID, Game: game},
	).Take(&binding).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return binding.ChannelID, nil
}

// LogChannelFor returns the log channel for the given game: the game's own
// override if set, otherwise the guild default, otherwise "".
func LogChannelFor(guildID string, game string, db *gorm.DB) (string, error) {
	var binding models.GameChannel
	err := db.Where(
		&models.GameChannel{GuildID: guildID, Game: game},
	).Take(&binding).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	if binding.LogChannelID != "" {
		return binding.LogChannelID, nil
	}

	var guildConfig models.GuildConfig
	err = db.Where(
		&models.GuildConfig{GuildID: guildID},
	).Take(&guildConfig).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return guildConfig.LogChannelID, nil
}

// gameChannelInUse reports whether the channel already hosts a game other
// than the given one in the guild. Log channels don't count as in use.
func gameChannelInUse(guildID string, channelID string, game string, db *gorm.DB) (bool, error) {
	var bindings []models.GameChannel
	err := db.Where(
		&models.GameChannel{GuildID: guildID, ChannelID: channelID},
	).Find(&bindings).Error
	if err != nil {
		return false, err
	}

	for _, binding := range bindings {
		if binding.Game != game {
			return true, nil
		}
	}

	return false, nil
}

// logChannelInUse reports whether the channel is a log destination in the
// guild, either a per-game override or the guild default.
func logChannelInUse(guildID string, channelID string, db *gorm.DB) (bool, error) {
	var count int64
	err := db.Model(&models.GameChannel{}).
		Where("guild_id = ? AND log_channel_id = ?", guildID, channelID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	var guildConfig models.GuildConfig
	err = db.Where(
		&models.GuildConfig{GuildID: guildID},
	).Take(&guildConfig).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return guildConfig.LogChannelID == channelID, nil
}

// SetGameChannel binds the given channel to the given game in the guild,
// creating the guild's config record on first use. A channel serving another
// game or already receiving logs is rejected.
func SetGameChannel(guildID string, game string, channelID string, db *gorm.DB) error {
	inUse, err := gameChannelInUse(guildID, channelID, game, db)
	if err != nil {
		return err
	}
	if !inUse {
		inUse, err = logChannelInUse(guildID, channelID, db)
		if err != nil {
			return err
		}
	}
	if inUse {
		return ErrChannelInUse
	}

	if err := ensureGuildConfig(guildID, db); err != nil {
		return err
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}, {Name: "game"}},
		DoUpdates: clause.AssignmentColumns([]string{"channel_id"}),
	}).Create(&models.GameChannel{
		GuildID:   guildID,
		Game:      game,
		ChannelID: channelID,
	}).Error
}

// SetLogChannel sets the log channel override for the given game in the
// guild. The channel must not already host a game.
func SetLogChannel(guildID string, game string, channelID string, db *gorm.DB) error {
	inUse, err := gameChannelInUse(guildID, channelID, "", db)
	if err != nil {
		return err
	}
	if inUse {
		return ErrChannelInUse
	}

	if err := ensureGuildConfig(guildID, db); err != nil {
		return err
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}, {Name: "game"}},
		DoUpdates: clause.AssignmentColumns([]string{"log_channel_id"}),
	}).Create(&models.GameChannel{
		GuildID:      guildID,
		Game:         game,
		LogChannelID: channelID,
	}).Error
}

// SetDefaultLogChannel sets the guild-wide fallback log channel.
func SetDefaultLogChannel(guildID string, channelID string, db *gorm.DB) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"log_channel_id"}),
	}).Create(&models.GuildConfig{
		GuildID:      guildID,
		LogChannelID: channelID,
	}).Error
}

func ensureGuildConfig(guildID string, db *gorm.DB) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoNothing: true,
	}).Create(&models.GuildConfig{GuildID: guildID}).Error
}
