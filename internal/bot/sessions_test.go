package bot

import (
	"sync"
	"testing"

	"github.com/ytfetch/yt-fetch-bot/internal/model"
)

func TestSessionStore_FirstContactIsIdle(t *testing.T) {
	store := NewSessionStore()
	if stage := store.Stage(1); stage != model.StageIdle {
		t.Errorf("Expected Idle for new chat, got %s", stage)
	}
}

func TestSessionStore_ConsumePendingURL(t *testing.T) {
	store := NewSessionStore()
	store.SetStage(1, model.StageAwaitingAudioURL)
	store.RecordPendingURL(1, "https://youtu.be/abc123", model.TargetAudio)

	if stage := store.Stage(1); stage != model.StageAwaitingQuality {
		t.Errorf("Expected AwaitingQuality after recording URL, got %s", stage)
	}

	url, kind, ok := store.ConsumePendingURL(1)
	if !ok {
		t.Fatal("Expected pending URL, got absent")
	}
	if url != "https://youtu.be/abc123" || kind != model.TargetAudio {
		t.Errorf("Unexpected consumed values: %s, %s", url, kind)
	}
	if stage := store.Stage(1); stage != model.StageIdle {
		t.Errorf("Expected Idle after consumption, got %s", stage)
	}

	// Second immediate consumption must report absent.
	if _, _, ok := store.ConsumePendingURL(1); ok {
		t.Error("Expected second consumption to report absent")
	}
}

func TestSessionStore_NewURLOverwrites(t *testing.T) {
	store := NewSessionStore()
	store.RecordPendingURL(1, "https://youtu.be/first", model.TargetAudio)
	store.RecordPendingURL(1, "https://youtu.be/second", model.TargetVideo)

	url, kind, ok := store.ConsumePendingURL(1)
	if !ok || url != "https://youtu.be/second" || kind != model.TargetVideo {
		t.Errorf("Expected second URL to overwrite first, got %s/%s ok=%v", url, kind, ok)
	}
}

func TestSessionStore_ClearKeepsJobActive(t *testing.T) {
	store := NewSessionStore()
	store.RecordPendingURL(1, "https://youtu.be/abc", model.TargetAudio)
	if !store.TryStartJob(1) {
		t.Fatal("Expected to claim job slot")
	}

	store.Clear(1)

	if stage := store.Stage(1); stage != model.StageIdle {
		t.Errorf("Expected Idle after Clear, got %s", stage)
	}
	if _, _, ok := store.ConsumePendingURL(1); ok {
		t.Error("Expected pending URL gone after Clear")
	}
	if !store.JobActive(1) {
		t.Error("Clear must not release the job slot")
	}
}

func TestSessionStore_OneJobPerChat(t *testing.T) {
	store := NewSessionStore()

	if !store.TryStartJob(1) {
		t.Fatal("Expected first claim to succeed")
	}
	if store.TryStartJob(1) {
		t.Error("Expected second claim to fail while job is active")
	}
	// A different chat is unaffected.
	if !store.TryStartJob(2) {
		t.Error("Expected claim for another chat to succeed")
	}

	store.FinishJob(1)
	if !store.TryStartJob(1) {
		t.Error("Expected claim to succeed after FinishJob")
	}
}

func TestSessionStore_ConcurrentClaims(t *testing.T) {
	store := NewSessionStore()

	const attempts = 50
	var wg sync.WaitGroup
	wins := make(chan struct{}, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.TryStartJob(7) {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	if count != 1 {
		t.Errorf("Expected exactly one winning claim, got %d", count)
	}
}
