package download

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/semaphore"

	"github.com/ytfetch/yt-fetch-bot/internal/model"
	"github.com/ytfetch/yt-fetch-bot/internal/platform"
)

// Service executes download jobs. One Run call per job; the blocking fetch is
// bounded by a weighted semaphore shared across all chats.
type Service struct {
	fetcher fetcher
	workers *semaphore.Weighted
}

// NewService creates a job runner backed by yt-dlp with at most maxConcurrent
// fetches in flight.
func NewService(maxConcurrent int) *Service {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Service{
		fetcher: ytdlpFetcher{},
		workers: semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// Run executes one fetch-and-process job and reports the outcome. It blocks
// until the job terminates, so callers run it off the update loop. Failures
// are terminal: no retries happen here, the user resubmits instead.
//
// Run does not create or remove the scratch directory in req.OutputDir; the
// caller owns that lifecycle so cleanup survives panics in either party.
func (s *Service) Run(ctx context.Context, req model.JobRequest, progress ProgressFunc) model.JobResult {
	if err := s.workers.Acquire(ctx, 1); err != nil {
		return failure(model.FailExtraction, fmt.Sprintf("could not start download: %v", err), "")
	}
	defer s.workers.Release(1)

	opts := BuildOptions(req)
	log.Printf("[chat %d] starting %s job for %s (quality %s)", req.ChatID, req.Kind, req.URL, req.Quality)

	outcome, err := s.fetcher.Fetch(ctx, opts, progress)
	if err != nil {
		diag := ""
		if outcome != nil {
			diag = outcome.diagnostic
		}
		log.Printf("[chat %d] extraction failed: %v", req.ChatID, err)
		return failure(model.FailExtraction, err.Error(), diag)
	}

	path, ok := locateArtifact(req.OutputDir, outcome.preparedPath, req.Kind)
	if !ok {
		log.Printf("[chat %d] no artifact found in %s", req.ChatID, req.OutputDir)
		return failure(model.FailArtifactMissing,
			"download finished but no output file was found",
			platform.ListDir(req.OutputDir))
	}

	log.Printf("[chat %d] job produced %s", req.ChatID, path)
	return model.JobResult{FilePath: path, Title: outcome.title}
}

// locateArtifact probes for the expected output file and falls back to the
// largest file with an accepted extension when the prepared name never
// materialized (yt-dlp postprocessors sometimes rename or re-mux output).
func locateArtifact(dir, preparedPath string, kind model.TargetKind) (string, bool) {
	targetExt, accepted := AudioExt, platform.AudioExtensions
	if kind == model.TargetVideo {
		targetExt, accepted = VideoExt, platform.VideoExtensions
	}

	if preparedPath != "" {
		expected := strings.TrimSuffix(preparedPath, filepath.Ext(preparedPath)) + targetExt
		if fileExists(expected) {
			return expected, true
		}
		// A merged video can legitimately keep the prepared name.
		if kind == model.TargetVideo && fileExists(preparedPath) {
			return preparedPath, true
		}
	}

	return platform.LargestFileWithExt(dir, accepted)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func failure(kind model.FailureKind, message, diagnostic string) model.JobResult {
	return model.JobResult{Failure: &model.Failure{
		Kind:       kind,
		Message:    message,
		Diagnostic: diagnostic,
	}}
}
