package bot

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ytfetch/yt-fetch-bot/internal/model"
	"github.com/ytfetch/yt-fetch-bot/internal/platform"
)

const (
	helpText = "Send /start to open the menu, choose MP3 or Video, then paste a " +
		"YouTube link and pick a quality. Use /uploadcookies to provide a " +
		"cookies.txt for age-restricted or region-locked videos. Only download " +
		"content you have rights to."

	hintText = "Send /start to open the menu, or paste a YouTube link after " +
		"choosing Download MP3/Video."
)

func (b *Bot) handleCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	switch message.Command() {
	case "start":
		msg := tgbotapi.NewMessage(chatID, "Welcome — choose an option:")
		msg.ReplyMarkup = mainMenuKeyboard()
		if _, err := b.api.Send(msg); err != nil {
			log.Printf("[chat %d] menu send failed: %v", chatID, err)
		}
	case "help":
		b.send(chatID, helpText)
	case "uploadcookies":
		b.sessions.SetStage(chatID, model.StageAwaitingCookies)
		b.send(chatID, "Please upload cookies.txt now as a document (Netscape format).")
	default:
		b.send(chatID, "Unknown command. Try /help.")
	}
}

// handleText routes free text by conversational stage. Only the two
// awaiting-URL stages accept links; everything else gets a hint.
func (b *Bot) handleText(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	var kind model.TargetKind
	switch b.sessions.Stage(chatID) {
	case model.StageAwaitingAudioURL:
		kind = model.TargetAudio
	case model.StageAwaitingVideoURL:
		kind = model.TargetVideo
	default:
		b.send(chatID, hintText)
		return
	}

	if b.sessions.JobActive(chatID) {
		b.send(chatID, "A download is already running for this chat. Wait for it to finish, then try again.")
		return
	}

	url, ok := platform.FindYouTubeURL(message.Text)
	if !ok {
		b.send(chatID, "Please send a valid YouTube link (youtube.com or youtu.be).")
		return
	}

	b.sessions.RecordPendingURL(chatID, url, kind)

	var msg tgbotapi.MessageConfig
	if kind == model.TargetAudio {
		msg = tgbotapi.NewMessage(chatID, fmt.Sprintf("Audio URL received:\n%s\nChoose bitrate:", url))
		msg.ReplyMarkup = audioQualityKeyboard()
	} else {
		msg = tgbotapi.NewMessage(chatID, fmt.Sprintf("Video URL received:\n%s\nChoose resolution:", url))
		msg.ReplyMarkup = videoQualityKeyboard()
	}
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("[chat %d] quality keyboard send failed: %v", chatID, err)
	}
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	// Acknowledge immediately so the client stops its spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		log.Printf("callback ack failed: %v", err)
	}
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID

	action, err := parseCallback(callback.Data)
	if err != nil {
		log.Printf("[chat %d] %v", chatID, err)
		return
	}

	switch action.domain {
	case callbackMenu:
		b.handleMenuAction(chatID, messageID, action.payload)
	case callbackAudioQuality:
		b.handleQualityAction(chatID, messageID, model.TargetAudio, action.payload)
	case callbackVideoQuality:
		b.handleQualityAction(chatID, messageID, model.TargetVideo, action.payload)
	}
}

func (b *Bot) handleMenuAction(chatID int64, messageID int, payload string) {
	switch payload {
	case menuAudio:
		b.sessions.SetStage(chatID, model.StageAwaitingAudioURL)
		b.editText(chatID, messageID, "Send a YouTube link for audio (youtube.com or youtu.be).")
	case menuVideo:
		b.sessions.SetStage(chatID, model.StageAwaitingVideoURL)
		b.editText(chatID, messageID, "Send a YouTube link for video (youtube.com or youtu.be).")
	case menuCookies:
		b.sessions.SetStage(chatID, model.StageAwaitingCookies)
		b.editText(chatID, messageID, "Upload your cookies.txt as a document (Netscape format).")
	case menuHelp:
		b.editText(chatID, messageID, helpText)
	}
}

// handleQualityAction is the point where a conversation becomes a job: it
// consumes the pending URL, claims the chat's job slot, creates the scratch
// directory, and hands off to the background path.
func (b *Bot) handleQualityAction(chatID int64, messageID int, kind model.TargetKind, quality string) {
	if quality == qualityCancel {
		b.sessions.Clear(chatID)
		b.editText(chatID, messageID, "Cancelled.")
		return
	}

	url, pendingKind, ok := b.sessions.ConsumePendingURL(chatID)
	if !ok || pendingKind != kind {
		b.editText(chatID, messageID, "No URL found. Start again with /start.")
		return
	}

	if !b.sessions.TryStartJob(chatID) {
		b.editText(chatID, messageID, "A download is already running for this chat. Wait for it to finish.")
		return
	}

	scratchDir, err := platform.NewScratchDir(b.cfg.TempRoot)
	if err != nil {
		b.sessions.FinishJob(chatID)
		log.Printf("[chat %d] %v", chatID, err)
		b.editText(chatID, messageID, "Could not prepare temporary storage. Please try again.")
		return
	}

	req := model.JobRequest{
		ChatID:     chatID,
		URL:        url,
		Kind:       kind,
		Quality:    quality,
		OutputDir:  scratchDir,
		CookieFile: b.cookieFileIfPresent(),
	}

	if kind == model.TargetAudio {
		b.editText(chatID, messageID, "Preparing audio download...")
	} else {
		b.editText(chatID, messageID, "Preparing video download...")
	}

	b.startJob(req, messageID)
}

// cookieFileIfPresent probes the configured cookies path. Absence silently
// disables authenticated fetches.
func (b *Bot) cookieFileIfPresent() string {
	if b.cfg.CookiesFile == "" {
		return ""
	}
	if _, err := os.Stat(b.cfg.CookiesFile); err != nil {
		return ""
	}
	return b.cfg.CookiesFile
}

// handleDocument accepts a cookies.txt upload when one was requested.
func (b *Bot) handleDocument(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if b.sessions.Stage(chatID) != model.StageAwaitingCookies {
		b.send(chatID, "Use /uploadcookies first, then send the cookies.txt file.")
		return
	}
	defer b.sessions.Clear(chatID)

	if err := b.saveCookiesFile(message.Document.FileID); err != nil {
		log.Printf("[chat %d] failed to save cookies: %v", chatID, err)
		b.send(chatID, fmt.Sprintf("Failed to save cookies: %v", err))
		return
	}
	b.send(chatID, fmt.Sprintf("Saved cookies to %s.", b.cfg.CookiesFile))
}

func (b *Bot) saveCookiesFile(fileID string) error {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return fmt.Errorf("resolve file: %w", err)
	}

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("fetch file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch file: unexpected status %s", resp.Status)
	}

	out, err := os.Create(b.cfg.CookiesFile)
	if err != nil {
		return fmt.Errorf("create cookies file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write cookies file: %w", err)
	}
	return nil
}
