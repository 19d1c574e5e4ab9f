package model

import (
	"time"

	"github.com/google/uuid"
)

// Note rows are never soft-deleted by gorm. DeletedAt records when the note
// went to the archive bucket and is cleared on restore.
type Note struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SessionId     string     `gorm:"type:varchar(64);not null;index:idx_notes_session_bucket,priority:1"`
	Bucket        string     `gorm:"type:varchar(20);not null;index:idx_notes_session_bucket,priority:2"`
	OriginBucket  string     `gorm:"type:varchar(20);not null;default:''"`
	Content       string     `gorm:"type:varchar(200);not null"`
	Author        string     `gorm:"type:varchar(100);not null"`
	SortIndex     int64      `gorm:"not null;default:0"`
	LastBucket    string     `gorm:"type:varchar(20);not null;default:''"`
	LastSortIndex *int64     `gorm:"default:null"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime"`
	DeletedAt     *time.Time `gorm:"index"`
}

func (Note) TableName() string {
	return "workshop_notes"
}
