package model

import (
	"time"

	"gorm.io/datatypes"
)

type Confrontation struct {
	SessionId string         `gorm:"type:varchar(64);primaryKey"`
	Shortlist datatypes.JSON `gorm:"not null"`
	Checks    datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (Confrontation) TableName() string {
	return "workshop_confrontations"
}
