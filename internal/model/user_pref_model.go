package model

import "time"

type UserPref struct {
	UserId    string    `gorm:"primaryKey"`
	Language  string    `gorm:"not null;default:en"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserPref) TableName() string {
	return "user_prefs"
}
