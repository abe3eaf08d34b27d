package main

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/lrstanley/go-ytdlp"

	"github.com/ytfetch/yt-fetch-bot/internal/bot"
	"github.com/ytfetch/yt-fetch-bot/internal/config"
	"github.com/ytfetch/yt-fetch-bot/internal/download"
	"github.com/ytfetch/yt-fetch-bot/internal/platform"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const updateTimeout = 60 // seconds, long polling

func main() {
	log.Printf("yt-fetch-bot v%s starting...", version)

	godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	platform.CheckFFmpeg()

	// Fetch a yt-dlp binary when the host doesn't already have one.
	ytdlp.MustInstall(context.Background(), nil)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}
	log.Printf("authorized on account @%s", api.Self.UserName)

	downloads := download.NewService(cfg.MaxConcurrentJobs)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeout
	updates := api.GetUpdatesChan(u)

	bot.New(api, cfg, downloads).Run(updates)
}
