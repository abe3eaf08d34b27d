package download

import (
	"path/filepath"

	"github.com/ytfetch/yt-fetch-bot/internal/model"
)

// Output filename template inside the scratch directory. Title plus video id
// keeps prepared names collision-free within one job.
const OutputTemplate = "%(title)s-%(id)s.%(ext)s"

// Target container extensions by kind.
const (
	AudioExt = ".mp3"
	VideoExt = ".mp4"
)

// Format specs passed to the extractor. Video always prefers a combined
// best-video+best-audio selection under the chosen height ceiling.
const (
	audioFormatSpec     = "bestaudio/best"
	videoFormatSpecBest = "bestvideo+bestaudio/best"
)

var videoFormatSpecs = map[string]string{
	model.VideoQuality360:  "bestvideo[height<=360]+bestaudio/best",
	model.VideoQuality720:  "bestvideo[height<=720]+bestaudio/best",
	model.VideoQuality1080: "bestvideo[height<=1080]+bestaudio/best",
	model.VideoQualityBest: videoFormatSpecBest,
}

// Options is the flat configuration bag handed to the extractor. It is built
// once per job by BuildOptions and never mutated afterwards.
type Options struct {
	URL            string
	Kind           model.TargetKind
	FormatSpec     string
	AudioBitrate   string // e.g. "192K", audio jobs only
	OutputTemplate string
	CookieFile     string // empty disables authenticated fetches
	TargetExt      string
}

// BuildOptions maps a job request onto extractor options. Pure: it touches
// neither the network nor the filesystem.
func BuildOptions(req model.JobRequest) Options {
	opts := Options{
		URL:            req.URL,
		Kind:           req.Kind,
		OutputTemplate: filepath.Join(req.OutputDir, OutputTemplate),
		CookieFile:     req.CookieFile,
	}

	if req.Kind == model.TargetAudio {
		opts.FormatSpec = audioFormatSpec
		opts.AudioBitrate = req.Quality + "K"
		opts.TargetExt = AudioExt
		return opts
	}

	spec, ok := videoFormatSpecs[req.Quality]
	if !ok {
		spec = videoFormatSpecBest
	}
	opts.FormatSpec = spec
	opts.TargetExt = VideoExt
	return opts
}
