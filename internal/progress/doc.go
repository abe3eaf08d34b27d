package progress

// Package progress marshals per-job download progress from the extractor's
// callback goroutine into throttled edits of a chat status message.
