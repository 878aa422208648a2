package store

import (
	"testing"
	"time"
)

func TestAppendJoinsWithBlankLine(t *testing.T) {
	s := NewSession("u1", "en")

	s.Append("first paragraph")
	if s.Accumulated != "first paragraph" {
		t.Errorf("first fragment should be stored as is, got %q", s.Accumulated)
	}

	s.Append("second paragraph")
	want := "first paragraph\n\nsecond paragraph"
	if s.Accumulated != want {
		t.Errorf("got %q, want %q", s.Accumulated, want)
	}
}

func TestPushHistoryKeepsWindow(t *testing.T) {
	s := NewSession("u1", "en")

	for i := 0; i < 8; i++ {
		s.PushHistory("q", "a", 10)
	}

	if len(s.History) != 10 {
		t.Errorf("history length: got %d, want 10", len(s.History))
	}
	if s.TurnsSinceSummary != 16 {
		t.Errorf("TurnsSinceSummary: got %d, want 16", s.TurnsSinceSummary)
	}
}

func TestResetDialogKeepsHistoryAndLanguage(t *testing.T) {
	s := NewSession("u1", "ru")
	s.State = StateDiscussing
	s.ActiveTool = "feedback"
	s.Accumulated = "kept text"
	s.PushHistory("q", "a", 10)

	s.ResetDialog()

	if s.State != StateChat || s.ActiveTool != "" || s.Accumulated != "" {
		t.Errorf("dialog state not cleared: %+v", s)
	}
	if len(s.History) != 2 || s.Language != "ru" {
		t.Errorf("history and language must survive a dialog reset")
	}
}

func TestInCooldown(t *testing.T) {
	s := NewSession("u1", "en")
	now := time.Now()

	if s.InCooldown(now) {
		t.Error("fresh session must not be in cooldown")
	}

	s.CooldownUntil = now.Add(30 * time.Second)
	if !s.InCooldown(now) {
		t.Error("expected cooldown before CooldownUntil")
	}
	if s.InCooldown(now.Add(31 * time.Second)) {
		t.Error("cooldown must expire at CooldownUntil")
	}
}
