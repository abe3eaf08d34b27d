package bot

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ytfetch/yt-fetch-bot/internal/model"
)

const bytesPerMB = 1024 * 1024

// deliver is the post-job gate and dispatcher: it validates the artifact,
// enforces the size ceiling, streams the file, and settles the status
// message. The caller guarantees scratch-dir cleanup and job clearing.
func (b *Bot) deliver(req model.JobRequest, result model.JobResult, progressMsgID int) {
	if !result.OK() {
		b.editText(req.ChatID, progressMsgID, failureText(req.Kind, result.Failure))
		return
	}

	// The artifact can vanish between the runner and here if external
	// cleanup races us; treat that like a missing artifact.
	info, err := os.Stat(result.FilePath)
	if err != nil {
		log.Printf("[chat %d] artifact disappeared before upload: %v", req.ChatID, err)
		b.editText(req.ChatID, progressMsgID, "Download finished but the file disappeared before upload. Please try again.")
		return
	}

	ceiling := b.cfg.MaxFileSizeMB * bytesPerMB
	if info.Size() > ceiling {
		// Hard cutoff: Telegram rejects uploads near this size anyway.
		sizeMB := float64(info.Size()) / bytesPerMB
		b.editText(req.ChatID, progressMsgID, fmt.Sprintf(
			"File is %.1f MB (> %d MB) and cannot be sent over Telegram: %s",
			sizeMB, b.cfg.MaxFileSizeMB, result.FilePath))
		return
	}

	b.editText(req.ChatID, progressMsgID, "Uploading...")

	doc := tgbotapi.NewDocument(req.ChatID, tgbotapi.FilePath(result.FilePath))
	doc.Caption = uploadCaption(req, result)
	if _, err := b.api.Send(doc); err != nil {
		log.Printf("[chat %d] upload failed: %v", req.ChatID, err)
		b.editText(req.ChatID, progressMsgID, fmt.Sprintf("Upload error: %v", err))
		return
	}

	// Best-effort: the user already has the file, a lingering status
	// message is cosmetic.
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(req.ChatID, progressMsgID)); err != nil {
		log.Printf("[chat %d] progress message delete failed: %v", req.ChatID, err)
	}
}

func uploadCaption(req model.JobRequest, result model.JobResult) string {
	title := result.Title
	if title == "" {
		title = filepath.Base(result.FilePath)
	}
	return fmt.Sprintf("%s — %s", title, req.QualityLabel())
}

// failureText renders a classified failure for the user. The extractor's own
// diagnostic line is included when captured because it usually names the real
// cause (age gate, region lock, removed video) better than the wrapped error.
func failureText(kind model.TargetKind, failure *model.Failure) string {
	noun := "Audio"
	if kind == model.TargetVideo {
		noun = "Video"
	}

	switch failure.Kind {
	case model.FailArtifactMissing:
		return fmt.Sprintf("%s download finished but no file was found. Temp dir:\n%s", noun, failure.Diagnostic)
	default:
		text := fmt.Sprintf("%s download failed: %s", noun, failure.Message)
		if failure.Diagnostic != "" {
			text += "\n\nyt-dlp: " + failure.Diagnostic
		}
		return text
	}
}
