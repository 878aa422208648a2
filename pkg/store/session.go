package store

import (
	"time"

	"writer-coach-be/pkg/llm"
)

// Dialog states for a user session.
const (
	StateChat             = "CHAT"
	StateAccumulating     = "ACCUMULATING"
	StateFormatChoice     = "FORMAT_CHOICE"
	StateDiscussing       = "DISCUSSING"
	StateDocumentReady    = "DOCUMENT_READY"
	StateConfirmBroadcast = "CONFIRM_BROADCAST"
)

// Session holds the ephemeral dialog state for one user. Everything here
// except Language is lost on restart; Language is re-hydrated from the
// user preference repository when the session is recreated.
type Session struct {
	UserID     string
	State      string
	ActiveTool string // tool id while ACCUMULATING / DISCUSSING

	// Accumulated is the multi-message input buffer. In DISCUSSING it holds
	// the text the discussion is about, verbatim.
	Accumulated string

	History           []llm.Message
	Summary           string
	TurnsSinceSummary int

	Language string

	// PendingBroadcast is the staged admin broadcast awaiting confirmation.
	PendingBroadcast string

	// Generation failure tracking for the cooldown policy.
	FailureStreak int
	CooldownUntil time.Time
	LastCooldown  time.Time

	CreatedAt time.Time
}

func NewSession(userID, language string) *Session {
	return &Session{
		UserID:    userID,
		State:     StateChat,
		Language:  language,
		CreatedAt: time.Now(),
	}
}

// InCooldown reports whether plain text should currently be dropped.
func (s *Session) InCooldown(now time.Time) bool {
	return now.Before(s.CooldownUntil)
}

// ResetDialog returns the session to plain chat, dropping any buffered
// input and tool binding. History and language are untouched.
func (s *Session) ResetDialog() {
	s.State = StateChat
	s.ActiveTool = ""
	s.Accumulated = ""
	s.PendingBroadcast = ""
}

// Append adds a message fragment to the accumulation buffer. Fragments are
// separated by a blank line so paragraph boundaries survive.
func (s *Session) Append(text string) {
	if s.Accumulated == "" {
		s.Accumulated = text
		return
	}
	s.Accumulated += "\n\n" + text
}

// PushHistory records one user/assistant exchange, keeping the window bounded.
func (s *Session) PushHistory(userText, assistantText string, maxLen int) {
	s.History = append(s.History,
		llm.Message{Role: llm.RoleUser, Content: userText},
		llm.Message{Role: llm.RoleAssistant, Content: assistantText},
	)
	if maxLen > 0 && len(s.History) > maxLen {
		s.History = s.History[len(s.History)-maxLen:]
	}
	s.TurnsSinceSummary += 2
}
