package main

import (
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/RedGuy12/ChainGameBot/bot"
	"github.com/RedGuy12/ChainGameBot/config"
	"github.com/RedGuy12/ChainGameBot/dal"
)

var (
	guildID = flag.String(
		"guild",
		"",
		"Test guild ID. If not set, slash commands will be registered globally.",
	)
	dbPath = flag.String(
		"dbPath",
		"",
		"SQLite database file path. Overrides DB_PATH.",
	)
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *guildID != "" {
		cfg.GuildID = *guildID
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	db := dal.InitDB(cfg.DBPath)

	chainBot := bot.New(cfg, db)
	defer chainBot.Shutdown()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
}
