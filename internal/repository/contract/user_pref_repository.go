package contract

import (
	"context"

	"writer-coach-be/internal/entity"
)

type UserPrefRepository interface {
	// Upsert creates or updates the preference row for a user.
	Upsert(ctx context.Context, pref *entity.UserPref) error
	// Find returns nil when no row exists for the user.
	Find(ctx context.Context, userId string) (*entity.UserPref, error)
}
