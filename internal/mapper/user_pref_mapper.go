package mapper

import (
	"time"

	"writer-coach-be/internal/entity"
	"writer-coach-be/internal/model"
)

type UserPrefMapper struct{}

func NewUserPrefMapper() *UserPrefMapper {
	return &UserPrefMapper{}
}

func (m *UserPrefMapper) ToEntity(e *model.UserPref) *entity.UserPref {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.UserPref{
		UserId:    e.UserId,
		Language:  e.Language,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *UserPrefMapper) ToModel(e *entity.UserPref) *model.UserPref {
	if e == nil {
		return nil
	}
	return &model.UserPref{
		UserId:   e.UserId,
		Language: e.Language,
	}
}
