package entity

import "time"

type Session struct {
	Token          string
	ProjectName    string
	ThemeName      string
	LastActivityAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
