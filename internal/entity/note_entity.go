package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id            uuid.UUID
	SessionId     string
	Bucket        Bucket
	OriginBucket  Bucket
	Content       string
	Author        string
	SortIndex     int64
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
	LastBucket    Bucket
	LastSortIndex *int64
}

// Clone returns a copy that shares no pointers with n.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	c := *n
	if n.UpdatedAt != nil {
		t := *n.UpdatedAt
		c.UpdatedAt = &t
	}
	if n.DeletedAt != nil {
		t := *n.DeletedAt
		c.DeletedAt = &t
	}
	if n.LastSortIndex != nil {
		v := *n.LastSortIndex
		c.LastSortIndex = &v
	}
	return &c
}

func (n *Note) IsArchived() bool {
	return n.Bucket == BucketArchive
}
