package bot

import (
	"fmt"
	"log"

	"github.com/RedGuy12/ChainGameBot/dal"
	"github.com/RedGuy12/ChainGameBot/discordutils"
	"github.com/RedGuy12/ChainGameBot/game"
	"github.com/RedGuy12/ChainGameBot/models"
	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
)

// HandleMessage validates one inbound message against the game configured
// for its channel, if any.
func (bot *Bot) HandleMessage(m *discordgo.MessageCreate) {
	// Self first: the "No DMs" reply below comes back through the gateway
	// and must not trigger another reply.
	if m.Author == nil || m.Author.ID == bot.session.State.User.ID {
		return
	}
	if m.GuildID == "" {
		bot.session.ChannelMessageSend(m.ChannelID, "No DMs, sorry!")
		return
	}

	gameName, err := dal.GameForChannel(m.GuildID, m.ChannelID, bot.db)
	if err != nil {
		bot.reportError(m.ChannelID, err)
		return
	}
	definition := game.Lookup(gameName)
	if definition == nil {
		return
	}

	logChannel, err := dal.LogChannelFor(m.GuildID, gameName, bot.db)
	if err != nil {
		bot.reportError(m.ChannelID, err)
		return
	}
	if logChannel == "" {
		return
	}

	word := game.Normalize(m.Content)

	accept, rejection, err := bot.pipeline.Validate(game.Submission{
		Game:      definition,
		GuildID:   m.GuildID,
		Word:      word,
		Raw:       m.Content,
		Author:    m.Author.ID,
		MessageID: m.ID,
	}, m.ChannelID)
	if err != nil {
		bot.reportError(logChannel, err)
		return
	}

	if rejection != nil {
		bot.rejectMessage(m, rejection, logChannel)
		return
	}

	err = dal.AppendWord(models.WordEntry{
		Game:      definition.Name,
		Word:      word,
		Author:    m.Author.ID,
		MessageID: m.ID,
		Idx:       accept.NextIndex,
		GuildID:   m.GuildID,
	}, bot.db)
	if err != nil {
		bot.reportError(logChannel, err)
		return
	}

	if err := bot.session.MessageReactionAdd(m.ChannelID, m.ID, "👍"); err != nil {
		log.Printf("Failed to react to %v: %v", m.ID, err)
	}
}

// rejectMessage deletes the offending message and explains the violation in
// the game's log channel.
func (bot *Bot) rejectMessage(
	m *discordgo.MessageCreate,
	rejection *game.Rejection,
	logChannel string,
) {
	if err := bot.session.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		log.Printf("Failed to delete message %v: %v", m.ID, err)
	}

	description := rejection.Explanation
	embed := &discordgo.MessageEmbed{
		Title: rejection.Title,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    m.Author.Username,
			IconURL: m.Author.AvatarURL(""),
		},
	}

	if rejection.Kind == game.DuplicateWord && rejection.Prior != nil {
		prior := rejection.Prior
		description = fmt.Sprintf(
			"`%v` has [been used before](%v) by <@%v> %v!",
			m.Content,
			discordutils.MessageLink(m.GuildID, m.ChannelID, prior.MessageID),
			prior.Author,
			humanize.Time(prior.CreatedAt),
		)
		if priorUser, err := bot.session.User(prior.Author); err == nil {
			embed.Thumbnail = &discordgo.MessageEmbedThumbnail{
				URL: priorUser.AvatarURL(""),
			}
		}
	}
	embed.Description = description

	_, err := bot.session.ChannelMessageSendComplex(logChannel, &discordgo.MessageSend{
		Content: m.Author.Mention(),
		Embeds:  []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		bot.reportError(logChannel, err)
	}
}
