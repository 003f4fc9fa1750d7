package discordutils

import (
	"github.com/bwmarrin/discordgo"
)

// MemberCanManageGuild returns true if the interaction's invoker has the
// Manage Server permission in the current channel.
func MemberCanManageGuild(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionManageServer > 0
}

// MemberCanManageMessages returns true if the interaction's invoker has the
// Manage Messages permission in the current channel.
func MemberCanManageMessages(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionManageMessages > 0
}

// ReplyEphemeral responds to the given interaction with a message only the
// invoker can see.
func ReplyEphemeral(
	content string,
	interaction *discordgo.Interaction,
	session *discordgo.Session,
) error {
	return session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// Reply responds to the given interaction with a visible message.
func Reply(
	content string,
	interaction *discordgo.Interaction,
	session *discordgo.Session,
) error {
	return session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
}

// MessageExists reports whether the given message can still be fetched from
// the given channel.
func MessageExists(
	channelID string,
	messageID string,
	session *discordgo.Session,
) bool {
	_, err := session.ChannelMessage(channelID, messageID)
	return err == nil
}

// MessageLink returns the canonical https link to a guild message.
func MessageLink(guildID string, channelID string, messageID string) string {
	return "https://discord.com/channels/" + guildID + "/" + channelID + "/" + messageID
}
