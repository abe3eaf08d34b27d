package download

import (
	"context"

	"github.com/ytfetch/yt-fetch-bot/internal/model"
)

// ProgressFunc receives progress events on the download goroutine. It must
// hand events off rather than touch chat state directly.
type ProgressFunc func(model.ProgressEvent)

// fetchOutcome is what the extractor reports when its blocking call returns.
// It can accompany an error: a failed run may still carry a diagnostic line.
type fetchOutcome struct {
	// preparedPath is the output path derived from the extractor's
	// filename-preparation convention, before any extension swap.
	preparedPath string

	// title is the media title from the extracted metadata.
	title string

	// diagnostic is the last error line the extractor logged, if any.
	diagnostic string
}

// fetcher abstracts the blocking fetch-and-process call so the runner's
// probing and classification logic is testable without a yt-dlp binary.
type fetcher interface {
	Fetch(ctx context.Context, opts Options, progress ProgressFunc) (*fetchOutcome, error)
}
