package download

import (
	"context"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytfetch/yt-fetch-bot/internal/model"
)

// How often the extractor invokes the progress callback. The reporter applies
// its own chat-facing throttle on top of this.
const progressInterval = 500 * time.Millisecond

// ytdlpFetcher runs the real yt-dlp binary through go-ytdlp.
type ytdlpFetcher struct{}

func (ytdlpFetcher) Fetch(ctx context.Context, opts Options, progress ProgressFunc) (*fetchOutcome, error) {
	dl := ytdlp.New().
		NoPlaylist().
		ForceOverwrites().
		RestrictFilenames().
		Output(opts.OutputTemplate)

	if opts.Kind == model.TargetAudio {
		dl.Format(opts.FormatSpec).
			ExtractAudio().
			AudioFormat("mp3").
			AudioQuality(opts.AudioBitrate)
	} else {
		dl.Format(opts.FormatSpec).
			MergeOutputFormat("mp4")
	}

	if opts.CookieFile != "" {
		dl.Cookies(opts.CookieFile)
	}

	if progress != nil {
		dl.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
			progress(toProgressEvent(update))
		})
	}

	result, err := dl.Run(ctx, opts.URL)

	outcome := &fetchOutcome{}
	if result != nil {
		outcome.diagnostic = lastDiagnosticLine(result.Stderr)
		if info, infoErr := result.GetExtractedInfo(); infoErr == nil && len(info) > 0 {
			if info[0].Filename != nil {
				outcome.preparedPath = *info[0].Filename
			}
			if info[0].Title != nil {
				outcome.title = *info[0].Title
			}
		}
	}

	if err != nil {
		return outcome, err
	}
	return outcome, nil
}

// toProgressEvent converts an extractor update into the domain event.
func toProgressEvent(update ytdlp.ProgressUpdate) model.ProgressEvent {
	ev := model.ProgressEvent{
		Status:  model.ProgressDownloading,
		Percent: -1,
		At:      time.Now(),
	}

	switch update.Status {
	case ytdlp.ProgressStatusFinished, ytdlp.ProgressStatusPostProcessing:
		ev.Status = model.ProgressFinished
	}

	if update.TotalBytes > 0 {
		ev.Percent = int(float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100)
		if ev.Percent > 100 {
			ev.Percent = 100
		}
	}

	if eta := update.ETA(); eta > 0 {
		ev.ETA = eta
	}
	return ev
}

// lastDiagnosticLine extracts the most useful line from the extractor's
// stderr: the last ERROR line when present, otherwise the last non-empty
// line. Returns "" when there is nothing to report.
func lastDiagnosticLine(stderr string) string {
	var lastError, lastLine string
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lastLine = line
		if strings.HasPrefix(line, "ERROR") {
			lastError = line
		}
	}
	if lastError != "" {
		return lastError
	}
	return lastLine
}
