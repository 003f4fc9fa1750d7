package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

// The bot's own DM reply is delivered back as a MessageCreate with no guild
// id. It must be dropped before the DM reply is considered, or the bot
// answers itself forever. The bare session here has no HTTP client and no
// database, so any attempt to reply or consult storage panics the test.
func TestHandleMessage_IgnoresOwnDM(t *testing.T) {
	session := &discordgo.Session{State: discordgo.NewState()}
	session.State.User = &discordgo.User{ID: "bot-user"}
	chainBot := &Bot{session: session}

	chainBot.HandleMessage(&discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "msg-1",
		ChannelID: "dm-1",
		Content:   "No DMs, sorry!",
		Author:    &discordgo.User{ID: "bot-user"},
	}})
}

func TestHandleMessage_IgnoresAuthorlessMessage(t *testing.T) {
	session := &discordgo.Session{State: discordgo.NewState()}
	session.State.User = &discordgo.User{ID: "bot-user"}
	chainBot := &Bot{session: session}

	chainBot.HandleMessage(&discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "msg-1",
		ChannelID: "dm-1",
	}})
}
