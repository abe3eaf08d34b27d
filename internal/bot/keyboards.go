package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ytfetch/yt-fetch-bot/internal/model"
)

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎧 Download MP3", callbackToken(cbDomainMenu, menuAudio)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎬 Download Video", callbackToken(cbDomainMenu, menuVideo)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📁 Upload cookies.txt", callbackToken(cbDomainMenu, menuCookies)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", callbackToken(cbDomainMenu, menuHelp)),
		),
	)
}

func audioQualityKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("128 kbps", callbackToken(cbDomainAudioQuality, model.AudioQuality128)),
			tgbotapi.NewInlineKeyboardButtonData("192 kbps", callbackToken(cbDomainAudioQuality, model.AudioQuality192)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("320 kbps", callbackToken(cbDomainAudioQuality, model.AudioQuality320)),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", callbackToken(cbDomainAudioQuality, qualityCancel)),
		),
	)
}

func videoQualityKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("360p", callbackToken(cbDomainVideoQuality, model.VideoQuality360)),
			tgbotapi.NewInlineKeyboardButtonData("720p", callbackToken(cbDomainVideoQuality, model.VideoQuality720)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("1080p", callbackToken(cbDomainVideoQuality, model.VideoQuality1080)),
			tgbotapi.NewInlineKeyboardButtonData("Best", callbackToken(cbDomainVideoQuality, model.VideoQualityBest)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Cancel", callbackToken(cbDomainVideoQuality, qualityCancel)),
		),
	)
}
