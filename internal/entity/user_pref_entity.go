package entity

import "time"

// UserPref holds the per-user settings that survive restarts. Language is
// the only field the dialog layer needs back; everything else about a
// session is ephemeral.
type UserPref struct {
	UserId    string
	Language  string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
