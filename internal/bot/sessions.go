package bot

import (
	"sync"

	"github.com/ytfetch/yt-fetch-bot/internal/model"
)

// SessionStore owns every chat's conversational state. All reads and writes
// go through its methods under one lock, which is what makes consume-and-clear
// operations atomic with respect to a session.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*model.Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*model.Session)}
}

// session returns the chat's session, creating an idle one on first contact.
// Callers must hold s.mu.
func (s *SessionStore) session(chatID int64) *model.Session {
	sess, ok := s.sessions[chatID]
	if !ok {
		sess = model.NewSession(chatID)
		s.sessions[chatID] = sess
	}
	return sess
}

// Stage returns the chat's current conversational stage.
func (s *SessionStore) Stage(chatID int64) model.Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(chatID).Stage
}

// SetStage moves the chat to the given stage without touching pending data.
func (s *SessionStore) SetStage(chatID int64, stage model.Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(chatID).Stage = stage
}

// RecordPendingURL stores the link awaiting a quality decision and advances
// the stage. A second submission overwrites the first; URLs never queue.
func (s *SessionStore) RecordPendingURL(chatID int64, url string, kind model.TargetKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(chatID)
	sess.PendingURL = url
	sess.PendingKind = kind
	sess.Stage = model.StageAwaitingQuality
}

// ConsumePendingURL returns and removes the pending link in one step. The
// second consecutive call reports absent.
func (s *SessionStore) ConsumePendingURL(chatID int64) (string, model.TargetKind, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(chatID)
	if sess.PendingURL == "" {
		return "", "", false
	}
	url, kind := sess.PendingURL, sess.PendingKind
	sess.PendingURL = ""
	sess.PendingKind = ""
	sess.Stage = model.StageIdle
	return url, kind, true
}

// Clear resets the conversation to idle and discards any pending link. It
// deliberately leaves JobActive alone: only job completion clears that.
func (s *SessionStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(chatID)
	sess.Stage = model.StageIdle
	sess.PendingURL = ""
	sess.PendingKind = ""
}

// TryStartJob marks a job as in flight for the chat. It fails when one is
// already running: a session gets at most one concurrent job.
func (s *SessionStore) TryStartJob(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(chatID)
	if sess.JobActive {
		return false
	}
	sess.JobActive = true
	return true
}

// FinishJob clears the in-flight marker once a job terminates, successfully
// or not.
func (s *SessionStore) FinishJob(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(chatID).JobActive = false
}

// JobActive reports whether the chat has a job in flight.
func (s *SessionStore) JobActive(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(chatID).JobActive
}
