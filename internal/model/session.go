package model

// Stage is the conversational position of one chat session.
type Stage string

const (
	// StageIdle means no conversation is in progress
	StageIdle Stage = "Idle"

	// StageAwaitingAudioURL means the user picked audio and owes us a link
	StageAwaitingAudioURL Stage = "AwaitingAudioURL"

	// StageAwaitingVideoURL means the user picked video and owes us a link
	StageAwaitingVideoURL Stage = "AwaitingVideoURL"

	// StageAwaitingQuality means a link is recorded and a quality keyboard is shown
	StageAwaitingQuality Stage = "AwaitingQuality"

	// StageAwaitingCookies means the next document upload is a cookies file
	StageAwaitingCookies Stage = "AwaitingCookies"
)

// String returns the string representation of Stage
func (s Stage) String() string {
	return string(s)
}

// Session is the ephemeral per-chat state tracked between updates. It is
// owned by the session store; handlers never retain it across updates.
type Session struct {
	ChatID int64
	Stage  Stage

	// PendingURL is the link awaiting a quality decision, empty otherwise.
	// A new submission overwrites it, never queues behind it.
	PendingURL  string
	PendingKind TargetKind

	// JobActive is set while a download job for this chat is in flight.
	// New URL submissions are rejected until it clears.
	JobActive bool
}

// NewSession returns an idle session for the given chat.
func NewSession(chatID int64) *Session {
	return &Session{ChatID: chatID, Stage: StageIdle}
}
