package model

import (
	"testing"
	"time"
)

func TestProgressEvent_ETAString(t *testing.T) {
	tests := []struct {
		eta      time.Duration
		expected string
	}{
		{0, "—"},
		{-time.Second, "—"},
		{30 * time.Second, "00:30"},
		{90 * time.Second, "01:30"},
		{time.Hour, "01:00:00"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
		{2*time.Hour + 2*time.Minute + 3*time.Second, "02:02:03"},
	}

	for _, test := range tests {
		ev := ProgressEvent{ETA: test.eta}
		if got := ev.ETAString(); got != test.expected {
			t.Errorf("ETAString() with ETA=%v = %s, expected %s", test.eta, got, test.expected)
		}
	}
}

func TestJobRequest_QualityLabel(t *testing.T) {
	tests := []struct {
		kind     TargetKind
		quality  string
		expected string
	}{
		{TargetAudio, AudioQuality128, "128 kbps"},
		{TargetAudio, AudioQuality320, "320 kbps"},
		{TargetVideo, VideoQuality720, "720p"},
		{TargetVideo, VideoQualityBest, "best quality"},
	}

	for _, test := range tests {
		req := JobRequest{Kind: test.kind, Quality: test.quality}
		if got := req.QualityLabel(); got != test.expected {
			t.Errorf("QualityLabel() for %s/%s = %q, expected %q", test.kind, test.quality, got, test.expected)
		}
	}
}

func TestFailure_Error(t *testing.T) {
	f := &Failure{Kind: FailExtraction, Message: "exit status 1"}
	if got := f.Error(); got != "extraction: exit status 1" {
		t.Errorf("Error() = %q", got)
	}

	f.Diagnostic = "ERROR: video unavailable"
	if got := f.Error(); got != "extraction: exit status 1 (ERROR: video unavailable)" {
		t.Errorf("Error() with diagnostic = %q", got)
	}
}

func TestJobResult_OK(t *testing.T) {
	ok := JobResult{FilePath: "/tmp/a.mp3", Title: "A"}
	if !ok.OK() {
		t.Error("Expected success result to be OK")
	}

	failed := JobResult{Failure: &Failure{Kind: FailArtifactMissing, Message: "nothing"}}
	if failed.OK() {
		t.Error("Expected failure result to not be OK")
	}
}
