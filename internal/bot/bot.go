package bot

import (
	"context"
	"log"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ytfetch/yt-fetch-bot/internal/config"
	"github.com/ytfetch/yt-fetch-bot/internal/download"
	"github.com/ytfetch/yt-fetch-bot/internal/model"
	"github.com/ytfetch/yt-fetch-bot/internal/platform"
	"github.com/ytfetch/yt-fetch-bot/internal/progress"
)

// API is the slice of the Telegram client the bot uses. *tgbotapi.BotAPI
// satisfies it; tests substitute a fake.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// JobRunner executes one download job to completion. *download.Service is
// the production implementation.
type JobRunner interface {
	Run(ctx context.Context, req model.JobRequest, progress download.ProgressFunc) model.JobResult
}

// Bot wires the update loop to session state and the download runner.
type Bot struct {
	api       API
	cfg       *config.Config
	sessions  *SessionStore
	downloads JobRunner
}

// New creates the bot front end.
func New(api API, cfg *config.Config, downloads JobRunner) *Bot {
	return &Bot{
		api:       api,
		cfg:       cfg,
		sessions:  NewSessionStore(),
		downloads: downloads,
	}
}

// Run consumes updates until the channel closes. All chat-facing interaction
// happens on this single goroutine; only download jobs leave it.
func (b *Bot) Run(updates tgbotapi.UpdatesChannel) {
	log.Println("bot is listening for updates...")
	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			b.handleCallback(update.CallbackQuery)
		case update.Message == nil:
			// ignore edits, polls, etc.
		case update.Message.IsCommand():
			b.handleCommand(update.Message)
		case update.Message.Document != nil:
			b.handleDocument(update.Message)
		case update.Message.Text != "":
			b.handleText(update.Message)
		}
	}
}

// startJob launches the background execution path for one job: runner, then
// delivery. progressMsgID is the status message the reporter edits and the
// dispatcher later deletes or repurposes for errors.
func (b *Bot) startJob(req model.JobRequest, progressMsgID int) {
	go func() {
		defer b.sessions.FinishJob(req.ChatID)
		defer platform.RemoveScratchDir(req.OutputDir)
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[chat %d] recovered from panic in job: %v\n%s", req.ChatID, r, debug.Stack())
				b.editText(req.ChatID, progressMsgID, "An internal error interrupted the download. Please try again.")
			}
		}()

		reporter := progress.NewReporter(messageEditor{
			api:       b.api,
			chatID:    req.ChatID,
			messageID: progressMsgID,
		})
		result := b.downloads.Run(context.Background(), req, reporter.Publish)
		reporter.Close()

		b.deliver(req, result, progressMsgID)
	}()
}

// messageEditor adapts the Telegram client to the reporter's Editor.
type messageEditor struct {
	api       API
	chatID    int64
	messageID int
}

func (e messageEditor) EditText(text string) error {
	_, err := e.api.Send(tgbotapi.NewEditMessageText(e.chatID, e.messageID, text))
	return err
}

// send is a helper for plain text replies; failures are logged, not fatal.
func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("[chat %d] send failed: %v", chatID, err)
	}
}

func (b *Bot) editText(chatID int64, messageID int, text string) {
	if _, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		log.Printf("[chat %d] edit failed: %v", chatID, err)
	}
}
