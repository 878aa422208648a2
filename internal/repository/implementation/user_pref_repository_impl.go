package implementation

import (
	"context"
	"errors"

	"writer-coach-be/internal/entity"
	"writer-coach-be/internal/mapper"
	"writer-coach-be/internal/model"
	"writer-coach-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserPrefRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserPrefMapper
}

func NewUserPrefRepository(db *gorm.DB) contract.UserPrefRepository {
	return &UserPrefRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserPrefMapper(),
	}
}

func (r *UserPrefRepositoryImpl) Upsert(ctx context.Context, pref *entity.UserPref) error {
	m := r.mapper.ToModel(pref)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"language", "updated_at"}),
		}).
		Create(m).Error
}

func (r *UserPrefRepositoryImpl) Find(ctx context.Context, userId string) (*entity.UserPref, error) {
	var m model.UserPref
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
