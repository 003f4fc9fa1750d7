package bot

import (
	"errors"
	"fmt"
	"log"
	"regexp"

	"github.com/RedGuy12/ChainGameBot/dal"
	"github.com/RedGuy12/ChainGameBot/discordutils"
	"github.com/RedGuy12/ChainGameBot/game"
	"github.com/RedGuy12/ChainGameBot/models"
	"github.com/bwmarrin/discordgo"
)

var markdownEscaper = regexp.MustCompile("([*_~|<`])")

// Ping acknowledges that the bot is alive.
func (bot *Bot) Ping(i *discordgo.InteractionCreate) {
	discordutils.ReplyEphemeral("Pong!", i.Interaction, bot.session)
}

// Invite replies with the bot's authorization URL.
func (bot *Bot) Invite(i *discordgo.InteractionCreate) {
	discordutils.ReplyEphemeral(
		fmt.Sprintf(
			"https://discord.com/api/oauth2/authorize?client_id=%v"+
				"&permissions=2147838016&scope=bot%%20applications.commands",
			bot.session.State.User.ID,
		),
		i.Interaction,
		bot.session,
	)
}

// SetGame binds the current channel to a game for the current guild.
func (bot *Bot) SetGame(i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		discordutils.ReplyEphemeral("No DMs, sorry!", i.Interaction, bot.session)
		return
	}
	if !discordutils.MemberCanManageGuild(i) {
		discordutils.ReplyEphemeral(
			"Lacking Manage Server permission, sorry!",
			i.Interaction,
			bot.session,
		)
		return
	}

	gameName := i.ApplicationCommandData().Options[0].StringValue()
	if game.Lookup(gameName) == nil {
		discordutils.ReplyEphemeral("Please specify a game!", i.Interaction, bot.session)
		return
	}

	previous, err := dal.ChannelForGame(i.GuildID, gameName, bot.db)
	if err != nil {
		bot.reportError(i.ChannelID, err)
		return
	}

	err = dal.SetGameChannel(i.GuildID, gameName, i.ChannelID, bot.db)
	if errors.Is(err, dal.ErrChannelInUse) {
		discordutils.ReplyEphemeral(
			"This channel is already in use!",
			i.Interaction,
			bot.session,
		)
		return
	}
	if err != nil {
		bot.reportError(i.ChannelID, err)
		return
	}

	reply := "This channel has been initialized for a game of " + gameName + "!"
	if previous != "" && previous != i.ChannelID {
		reply += " (Moved from <#" + previous + ">.)"
	}
	discordutils.Reply(reply, i.Interaction, bot.session)
}

// SetLogs binds the current channel as the log destination for a game, or as
// the guild default when no game is given.
func (bot *Bot) SetLogs(i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		discordutils.ReplyEphemeral("No DMs, sorry!", i.Interaction, bot.session)
		return
	}
	if !discordutils.MemberCanManageGuild(i) {
		discordutils.ReplyEphemeral(
			"Lacking Manage Server permission, sorry!",
			i.Interaction,
			bot.session,
		)
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) > 0 {
		gameName := options[0].StringValue()
		err := dal.SetLogChannel(i.GuildID, gameName, i.ChannelID, bot.db)
		if errors.Is(err, dal.ErrChannelInUse) {
			discordutils.ReplyEphemeral(
				"This channel is already in use!",
				i.Interaction,
				bot.session,
			)
			return
		}
		if err != nil {
			bot.reportError(i.ChannelID, err)
			return
		}
		discordutils.Reply(
			"Logs for "+gameName+" will be posted here!",
			i.Interaction,
			bot.session,
		)
		return
	}

	if err := dal.SetDefaultLogChannel(i.GuildID, i.ChannelID, bot.db); err != nil {
		bot.reportError(i.ChannelID, err)
		return
	}
	discordutils.Reply(
		"Logs will be posted here if no game-specific channel is set!",
		i.Interaction,
		bot.session,
	)
}

// SetLast force-posts the next chain entry as the bot, bypassing validation.
// It exists to repair a broken chain.
func (bot *Bot) SetLast(i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		discordutils.ReplyEphemeral("No DMs, sorry!", i.Interaction, bot.session)
		return
	}
	if !discordutils.MemberCanManageMessages(i) {
		discordutils.ReplyEphemeral(
			"Lacking Manage Messages permission, sorry!",
			i.Interaction,
			bot.session,
		)
		return
	}

	text := i.ApplicationCommandData().Options[0].StringValue()
	word := game.Normalize(text)
	if word == "" {
		// Whitespace-only text would store an empty word and break
		// the chain for every later submission.
		discordutils.ReplyEphemeral(
			"Please specify what to force-post!",
			i.Interaction,
			bot.session,
		)
		return
	}

	gameName, err := dal.GameForChannel(i.GuildID, i.ChannelID, bot.db)
	if err != nil {
		bot.reportError(i.ChannelID, err)
		return
	}
	definition := game.Lookup(gameName)
	if definition == nil {
		discordutils.ReplyEphemeral(
			"This channel doesn't host a game!",
			i.Interaction,
			bot.session,
		)
		return
	}

	err = discordutils.Reply(
		markdownEscaper.ReplaceAllString(text, `\$1`),
		i.Interaction,
		bot.session,
	)
	if err != nil {
		bot.reportError(i.ChannelID, err)
		return
	}

	reply, err := bot.session.InteractionResponse(i.Interaction)
	if err != nil {
		bot.reportError(i.ChannelID, err)
		return
	}

	accept, _, err := bot.pipeline.Validate(game.Submission{
		Game:      definition,
		GuildID:   i.GuildID,
		Word:      word,
		Raw:       text,
		Author:    bot.session.State.User.ID,
		MessageID: reply.ID,
		Override:  true,
	}, i.ChannelID)
	if err != nil {
		bot.reportError(i.ChannelID, err)
		return
	}

	err = dal.AppendWord(models.WordEntry{
		Game:      definition.Name,
		Word:      word,
		Author:    bot.session.State.User.ID,
		MessageID: reply.ID,
		Idx:       accept.NextIndex,
		GuildID:   i.GuildID,
	}, bot.db)
	if err != nil {
		bot.reportError(i.ChannelID, err)
		return
	}

	if err := bot.session.MessageReactionAdd(i.ChannelID, reply.ID, "👍"); err != nil {
		log.Printf("Failed to react to %v: %v", reply.ID, err)
	}
}
