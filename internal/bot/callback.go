package bot

import (
	"fmt"
	"strings"
)

// Callback-data domains. Tokens look like "<domain>:<payload>"; the URL a
// selection applies to lives in session state, never in the token, so tokens
// stay far below Telegram's 64-byte callback-data limit.
const (
	cbDomainMenu         = "menu"
	cbDomainAudioQuality = "audio_q"
	cbDomainVideoQuality = "video_q"

	cbDelimiter = ":"
)

// Menu payloads.
const (
	menuAudio   = "audio"
	menuVideo   = "video"
	menuCookies = "upload_cookies"
	menuHelp    = "help"
)

// Shared quality payload for aborting a selection.
const qualityCancel = "cancel"

type callbackDomain int

const (
	callbackMenu callbackDomain = iota
	callbackAudioQuality
	callbackVideoQuality
)

// callbackAction is a callback token parsed once at the update boundary.
// Handlers switch on the tagged domain instead of re-splitting strings.
type callbackAction struct {
	domain  callbackDomain
	payload string
}

// parseCallback validates and splits raw callback data.
func parseCallback(data string) (callbackAction, error) {
	parts := strings.SplitN(data, cbDelimiter, 2)
	if len(parts) != 2 || parts[1] == "" {
		return callbackAction{}, fmt.Errorf("malformed callback data %q", data)
	}

	var domain callbackDomain
	switch parts[0] {
	case cbDomainMenu:
		domain = callbackMenu
	case cbDomainAudioQuality:
		domain = callbackAudioQuality
	case cbDomainVideoQuality:
		domain = callbackVideoQuality
	default:
		return callbackAction{}, fmt.Errorf("unknown callback domain %q", parts[0])
	}

	return callbackAction{domain: domain, payload: parts[1]}, nil
}

// callbackToken builds the wire form of a callback action.
func callbackToken(domain, payload string) string {
	return domain + cbDelimiter + payload
}
