package bot

// Package bot is the Telegram front end: the long-polling update loop,
// per-chat session tracking, inline-keyboard quality selection, and the
// delivery path that uploads finished artifacts back into the chat. All chat
// interaction stays on the update-loop goroutine; download jobs run in the
// background and report back through message edits.
