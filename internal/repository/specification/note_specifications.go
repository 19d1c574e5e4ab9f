package specification

import (
	"afom-board-be/internal/entity"

	"gorm.io/gorm"
)

type BySession struct {
	SessionID string
}

func (s BySession) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type ByBucket struct {
	Bucket entity.Bucket
}

func (s ByBucket) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("bucket = ?", s.Bucket.String())
}

type ExcludeBucket struct {
	Bucket entity.Bucket
}

func (s ExcludeBucket) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("bucket <> ?", s.Bucket.String())
}

// OrderBySortIndex is the canonical board order. created_at and id break
// ties so reads are deterministic.
type OrderBySortIndex struct{}

func (s OrderBySortIndex) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("sort_index ASC").Order("created_at ASC").Order("id ASC")
}

// MissingOrigin selects legacy rows written before origin tracking.
type MissingOrigin struct{}

func (s MissingOrigin) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("origin_bucket = ?", "")
}
