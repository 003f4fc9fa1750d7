package bot

import (
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// reportError logs a collaborator failure and notifies the maintainer: first
// by pinging them in the given channel, and if that fails, by DMing them a
// link to the channel. Errors are never fatal to the event loop.
func (bot *Bot) reportError(channelID string, failure error) {
	log.Printf("Error in channel %v: %v", channelID, failure)

	if bot.cfg.MaintainerID == "" {
		return
	}

	detail := strings.ReplaceAll(failure.Error(), "```", "[3 backticks]")
	embed := &discordgo.MessageEmbed{
		Title:       "Error!",
		Description: fmt.Sprintf("Uhoh! I found an error!\n```\n%v\n```", detail),
	}

	_, err := bot.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: "<@" + bot.cfg.MaintainerID + ">",
		Embeds:  []*discordgo.MessageEmbed{embed},
	})
	if err == nil {
		return
	}

	dm, err := bot.session.UserChannelCreate(bot.cfg.MaintainerID)
	if err != nil {
		log.Printf("Failed to DM maintainer: %v", err)
		return
	}
	_, err = bot.session.ChannelMessageSendComplex(dm.ID, &discordgo.MessageSend{
		Content: "Failed to report in <#" + channelID + ">",
		Embeds:  []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		log.Printf("Failed to DM maintainer: %v", err)
	}
}
