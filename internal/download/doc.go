package download

// Package download implements the job execution core built on top of yt-dlp
// (via github.com/lrstanley/go-ytdlp). It translates a quality selection into
// extractor options, runs the blocking fetch on a bounded worker pool, locates
// the produced artifact with a fallback search, and classifies failures.
