package progress

import (
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/ytfetch/yt-fetch-bot/internal/model"
)

// Minimum wall-clock spacing between chat edits for one job.
const EditInterval = 1500 * time.Millisecond

// Buffer for events handed off from the download goroutine. When full,
// events are dropped rather than blocking the fetch.
const eventBuffer = 64

// Editor applies a text edit to the job's status message in the chat.
type Editor interface {
	EditText(text string) error
}

// Reporter turns the high-frequency progress stream of one job into
// rate-limited status-message edits. Events are published from the download
// goroutine and consumed on the reporter's own goroutine, so the chat client
// is never touched from the extractor's callback.
type Reporter struct {
	editor  Editor
	events  chan model.ProgressEvent
	done    chan struct{}
	limiter *rate.Limiter

	mu     sync.Mutex
	closed bool

	// consumer-goroutine state, never touched elsewhere
	lastPercent   string
	finishedShown bool
}

// NewReporter creates a reporter for one job and starts its consumer
// goroutine. Callers must Close it once the job terminates.
func NewReporter(editor Editor) *Reporter {
	r := &Reporter{
		editor:  editor,
		events:  make(chan model.ProgressEvent, eventBuffer),
		done:    make(chan struct{}),
		limiter: rate.NewLimiter(rate.Every(EditInterval), 1),
	}
	go r.consume()
	return r
}

// Publish hands an event to the reporter. Safe to call from any goroutine;
// never blocks. Events published after Close are dropped.
func (r *Reporter) Publish(ev model.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	select {
	case r.events <- ev:
	default:
		// Throttling discards most events anyway; losing one here is fine.
	}
}

// Close drains pending events and stops the consumer goroutine.
func (r *Reporter) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.events)
	r.mu.Unlock()
	<-r.done
}

func (r *Reporter) consume() {
	defer close(r.done)
	for ev := range r.events {
		r.handle(ev)
	}
}

// handle applies the throttle policy: at most one edit per EditInterval, and
// only when the rendered percentage changed. A finished event bypasses the
// throttle and is shown exactly once.
func (r *Reporter) handle(ev model.ProgressEvent) {
	if ev.Status == model.ProgressFinished {
		if r.finishedShown {
			return
		}
		r.finishedShown = true
		r.edit("Download finished, processing...")
		return
	}

	if ev.Percent < 0 {
		return
	}
	percent := fmt.Sprintf("%d%%", ev.Percent)
	if percent == r.lastPercent {
		return
	}
	if !r.limiter.Allow() {
		return
	}
	r.lastPercent = percent
	r.edit(fmt.Sprintf("Downloading... %s ETA %s", percent, ev.ETAString()))
}

// edit is fire-and-forget: a stale or deleted status message must never fail
// the download it describes.
func (r *Reporter) edit(text string) {
	if err := r.editor.EditText(text); err != nil {
		log.Printf("progress edit failed: %v", err)
	}
}
