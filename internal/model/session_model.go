package model

import "time"

type Session struct {
	Token          string     `gorm:"type:varchar(64);primaryKey"`
	ProjectName    string     `gorm:"type:varchar(255);not null;default:''"`
	ThemeName      string     `gorm:"type:varchar(255);not null;default:''"`
	LastActivityAt *time.Time `gorm:"index"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`
}

func (Session) TableName() string {
	return "workshop_sessions"
}
