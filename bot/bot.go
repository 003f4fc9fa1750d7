package bot

import (
	"log"

	"github.com/RedGuy12/ChainGameBot/config"
	"github.com/RedGuy12/ChainGameBot/dal"
	"github.com/RedGuy12/ChainGameBot/dictionary"
	"github.com/RedGuy12/ChainGameBot/discordutils"
	"github.com/RedGuy12/ChainGameBot/game"
	"github.com/RedGuy12/ChainGameBot/models"
	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

type commandHandler = func(*discordgo.InteractionCreate)

func gameChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(game.Definitions))
	for _, definition := range game.Definitions {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  definition.Name,
			Value: definition.Name,
		})
	}
	return choices
}

func botCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Checks that the bot is alive.",
		}, {
			Name:        "invite",
			Description: "Gets a link to invite the bot to your server.",
		}, {
			Name:        "set-game",
			Description: "Sets up this channel for a game.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "game",
					Description: "The game to play in this channel.",
					Required:    true,
					Choices:     gameChoices(),
				},
			},
		}, {
			Name:        "set-logs",
			Description: "Posts rule-violation logs in this channel.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "game",
					Description: "The game to log here. Omit to set the server default.",
					Required:    false,
					Choices:     gameChoices(),
				},
			},
		}, {
			Name:        "set-last",
			Description: "Forces the next chain entry, bypassing the rules.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message",
					Description: "The text to force-post.",
					Required:    true,
				},
			},
		},
	}
}

// Bot is an instance of the chain game bot.
type Bot struct {
	session            *discordgo.Session
	db                 *gorm.DB
	cfg                *config.Config
	pipeline           *game.Pipeline
	registeredCommands []*discordgo.ApplicationCommand
	commandHandlers    map[string]commandHandler
}

// gormStore adapts the dal package to the pipeline's store interface.
type gormStore struct {
	db *gorm.DB
}

func (store gormStore) LastWord(game string, guildID string) (*models.WordEntry, error) {
	return dal.LastWord(game, guildID, store.db)
}

func (store gormStore) FindWord(game string, guildID string, word string) (*models.WordEntry, error) {
	return dal.FindWord(game, guildID, word, store.db)
}

func (store gormStore) DeleteWordEntry(entry *models.WordEntry) error {
	return dal.DeleteWordEntry(entry, store.db)
}

// sessionMessages adapts the Discord session to the pipeline's
// message-existence check.
type sessionMessages struct {
	session *discordgo.Session
}

func (messages sessionMessages) MessageExists(channelID string, messageID string) bool {
	return discordutils.MessageExists(channelID, messageID, messages.session)
}

func (bot *Bot) initSession(token string) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatalf("Failed to create discord session: %v", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsDirectMessageTyping |
		discordgo.IntentsMessageContent

	session.AddHandler(func(*discordgo.Session, *discordgo.Ready) {
		log.Println("Bot is up!")
	})

	session.AddHandler(func(
		s *discordgo.Session,
		i *discordgo.InteractionCreate,
	) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if handler, ok := bot.commandHandlers[i.ApplicationCommandData().Name]; ok {
			handler(i)
		}
	})

	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		bot.HandleMessage(m)
	})

	session.AddHandler(func(s *discordgo.Session, t *discordgo.TypingStart) {
		if t.GuildID == "" {
			s.ChannelMessageSend(t.ChannelID, "No DMs, sorry!")
		}
	})

	bot.session = session
}

// newPipeline wires the validation pipeline to its collaborators. The
// session need not be open yet.
func newPipeline(cfg *config.Config, db *gorm.DB, session *discordgo.Session) *game.Pipeline {
	return &game.Pipeline{
		Store:       gormStore{db: db},
		Dictionary:  dictionary.NewClient(),
		Messages:    sessionMessages{session: session},
		TwiceExempt: cfg.GuildExempt,
	}
}

func (bot *Bot) registerCommands(guildID string) {
	for _, command := range botCommands() {
		newCommand, err := bot.session.ApplicationCommandCreate(
			bot.session.State.User.ID,
			guildID,
			command,
		)
		bot.registeredCommands = append(bot.registeredCommands, newCommand)
		if err != nil {
			log.Fatalf("Failed to create %v command: %v", command.Name, err)
		}
		log.Printf("Created %v command.", command.Name)
	}
}

// New initialises a new chain game bot.
func New(cfg *config.Config, db *gorm.DB) Bot {
	bot := Bot{db: db, cfg: cfg}

	bot.commandHandlers = map[string]commandHandler{
		"ping":     bot.Ping,
		"invite":   bot.Invite,
		"set-game": bot.SetGame,
		"set-logs": bot.SetLogs,
		"set-last": bot.SetLast,
	}

	bot.initSession(cfg.BotToken)

	// The gateway delivers events as soon as the session opens; the
	// pipeline has to exist by then.
	bot.pipeline = newPipeline(cfg, db, bot.session)

	if err := bot.session.Open(); err != nil {
		log.Fatalf("Failed to open session: %v", err)
	}

	bot.registerCommands(cfg.GuildID)

	return bot
}

// Shutdown shuts down the bot cleanly.
func (bot *Bot) Shutdown() {
	log.Println("Shutting down.")

	for _, command := range bot.registeredCommands {
		err := bot.session.ApplicationCommandDelete(
			bot.session.State.User.ID,
			bot.cfg.GuildID,
			command.ID,
		)
		if err != nil {
			log.Printf("Failed to delete %v command: %v", command.Name, err)
		} else {
			log.Printf("Deleted %v command.", command.Name)
		}
	}

	bot.session.Close()
}
