package progress

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/ytfetch/yt-fetch-bot/internal/model"
)

type recordingEditor struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (e *recordingEditor) EditText(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.texts = append(e.texts, text)
	return e.err
}

func (e *recordingEditor) edits() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.texts...)
}

// newIdleReporter builds a reporter without a consumer goroutine so tests can
// drive handle synchronously.
func newIdleReporter(editor Editor) *Reporter {
	return &Reporter{
		editor:  editor,
		events:  make(chan model.ProgressEvent, eventBuffer),
		done:    make(chan struct{}),
		limiter: rate.NewLimiter(rate.Every(EditInterval), 1),
	}
}

func downloading(percent int) model.ProgressEvent {
	return model.ProgressEvent{Status: model.ProgressDownloading, Percent: percent, At: time.Now()}
}

func TestReporter_ThrottleLaw(t *testing.T) {
	editor := &recordingEditor{}
	r := newIdleReporter(editor)

	// 100 events spaced 10ms apart with strictly increasing percentages.
	// Elapsed is ~1s, so the throttle permits at most ceil(1/1.5) = 1 edit.
	start := time.Now()
	for i := 0; i < 100; i++ {
		r.handle(downloading(i))
		time.Sleep(10 * time.Millisecond)
	}
	elapsed := time.Since(start).Seconds()

	allowed := int(elapsed/EditInterval.Seconds()) + 1
	if got := len(editor.edits()); got > allowed {
		t.Errorf("Expected at most %d edits over %.2fs, got %d", allowed, elapsed, got)
	}
	if len(editor.edits()) == 0 {
		t.Error("Expected at least the first edit to pass the throttle")
	}
}

func TestReporter_SkipsUnchangedPercent(t *testing.T) {
	editor := &recordingEditor{}
	r := newIdleReporter(editor)
	// A limiter that never throttles isolates the changed-percent rule.
	r.limiter = rate.NewLimiter(rate.Inf, 1)

	for i := 0; i < 5; i++ {
		r.handle(downloading(42))
	}
	r.handle(downloading(43))

	edits := editor.edits()
	if len(edits) != 2 {
		t.Fatalf("Expected 2 edits (42%% then 43%%), got %d: %v", len(edits), edits)
	}
	if !strings.Contains(edits[0], "42%") || !strings.Contains(edits[1], "43%") {
		t.Errorf("Unexpected edit texts: %v", edits)
	}
}

func TestReporter_SkipsUnknownPercent(t *testing.T) {
	editor := &recordingEditor{}
	r := newIdleReporter(editor)
	r.limiter = rate.NewLimiter(rate.Inf, 1)

	r.handle(downloading(-1))
	if len(editor.edits()) != 0 {
		t.Errorf("Expected no edits for unknown percent, got %v", editor.edits())
	}
}

func TestReporter_FinishedBypassesThrottleOnce(t *testing.T) {
	editor := &recordingEditor{}
	r := newIdleReporter(editor)

	// Exhaust the limiter, then finish: the processing note must still appear.
	r.handle(downloading(10))
	r.handle(model.ProgressEvent{Status: model.ProgressFinished})
	r.handle(model.ProgressEvent{Status: model.ProgressFinished})

	edits := editor.edits()
	finished := 0
	for _, text := range edits {
		if strings.Contains(text, "processing") {
			finished++
		}
	}
	if finished != 1 {
		t.Errorf("Expected exactly one processing edit, got %d in %v", finished, edits)
	}
}

func TestReporter_EditErrorsAreSwallowed(t *testing.T) {
	editor := &recordingEditor{err: errors.New("message to edit not found")}
	r := newIdleReporter(editor)

	// Must not panic or surface the error.
	r.handle(downloading(10))
	r.handle(model.ProgressEvent{Status: model.ProgressFinished})

	if len(editor.edits()) != 2 {
		t.Errorf("Expected both edits attempted, got %d", len(editor.edits()))
	}
}

func TestReporter_PublishCloseLifecycle(t *testing.T) {
	editor := &recordingEditor{}
	r := NewReporter(editor)

	r.Publish(downloading(25))
	r.Publish(model.ProgressEvent{Status: model.ProgressFinished})
	r.Close()

	edits := editor.edits()
	if len(edits) != 2 {
		t.Fatalf("Expected 2 edits after Close drained the queue, got %d: %v", len(edits), edits)
	}
	if !strings.Contains(edits[0], "25%") {
		t.Errorf("Expected first edit to show 25%%, got %q", edits[0])
	}
	if !strings.Contains(edits[1], "processing") {
		t.Errorf("Expected final processing edit, got %q", edits[1])
	}

	// Publishing after Close must not panic or block.
	r.Publish(downloading(99))
}
