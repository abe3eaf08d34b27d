package model

import (
	"fmt"
	"time"
)

// TargetKind selects the produced media type.
type TargetKind string

const (
	TargetAudio TargetKind = "audio"
	TargetVideo TargetKind = "video"
)

// Audio quality tokens (bitrate targets in kbps).
const (
	AudioQuality128 = "128"
	AudioQuality192 = "192"
	AudioQuality320 = "320"
)

// Video quality tokens (maximum height, or best available).
const (
	VideoQuality360  = "360"
	VideoQuality720  = "720"
	VideoQuality1080 = "1080"
	VideoQualityBest = "best"
)

// JobRequest is the immutable description of one fetch-and-process job,
// built once the user has chosen a quality. OutputDir is a freshly created
// scratch directory exclusive to this job.
type JobRequest struct {
	ChatID     int64
	URL        string
	Kind       TargetKind
	Quality    string
	OutputDir  string
	CookieFile string // empty when no cookies file is available
}

// QualityLabel returns the user-facing form of the quality token, used in
// upload captions.
func (r JobRequest) QualityLabel() string {
	if r.Kind == TargetAudio {
		return r.Quality + " kbps"
	}
	if r.Quality == VideoQualityBest {
		return "best quality"
	}
	return r.Quality + "p"
}

// ProgressStatus marks what phase a progress event describes.
type ProgressStatus string

const (
	ProgressDownloading ProgressStatus = "downloading"
	ProgressFinished    ProgressStatus = "finished"
)

// ProgressEvent is a transient status update produced on the download
// goroutine and consumed by the progress reporter. Never persisted.
type ProgressEvent struct {
	Status  ProgressStatus
	Percent int // 0..100, -1 if unknown
	ETA     time.Duration
	At      time.Time
}

// ETAString returns the event's ETA formatted as mm:ss or hh:mm:ss, or "—"
// when unknown.
func (e ProgressEvent) ETAString() string {
	total := int(e.ETA / time.Second)
	if total <= 0 {
		return "—"
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FailureKind classifies terminal job failures.
type FailureKind string

const (
	// FailExtraction means the fetch/transcode call itself errored
	FailExtraction FailureKind = "extraction"

	// FailArtifactMissing means the call succeeded but no output file was found
	FailArtifactMissing FailureKind = "artifact_missing"
)

// Failure is a classified terminal job failure. Diagnostic carries the
// extractor's last logged error line when one was captured, which often
// names the real cause more precisely than the wrapped error text.
type Failure struct {
	Kind       FailureKind
	Message    string
	Diagnostic string
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Diagnostic != "" {
		return fmt.Sprintf("%s: %s (%s)", f.Kind, f.Message, f.Diagnostic)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// JobResult is the outcome of one job. Exactly one of FilePath or Failure is
// set. The file at FilePath lives inside the job's scratch directory and is
// gone once that directory is removed.
type JobResult struct {
	FilePath string
	Title    string
	Failure  *Failure
}

// OK reports whether the job produced an artifact.
func (r JobResult) OK() bool {
	return r.Failure == nil
}
