package board

import (
	"time"

	"afom-board-be/internal/entity"
)

// DefaultRestoreBucket is used when nothing on the note says where it came from.
const DefaultRestoreBucket = entity.BucketAcquis

// State is the lifecycle of a note: Active or Archived.
type State interface {
	isState()
}

type Active struct {
	Bucket    entity.Bucket
	SortIndex int64
}

type Archived struct {
	OriginBucket  entity.Bucket
	LastBucket    entity.Bucket
	LastSortIndex *int64
	DeletedAt     *time.Time
}

func (Active) isState()   {}
func (Archived) isState() {}

func StateOf(n *entity.Note) State {
	if n.IsArchived() {
		return Archived{
			OriginBucket:  n.OriginBucket,
			LastBucket:    n.LastBucket,
			LastSortIndex: n.LastSortIndex,
			DeletedAt:     n.DeletedAt,
		}
	}
	return Active{Bucket: n.Bucket, SortIndex: n.SortIndex}
}

// Archive moves an active note to the bin, remembering where it was.
// OriginBucket is left untouched. Returns false when the note is already archived.
func Archive(n *entity.Note, archiveIndex int64, now time.Time) bool {
	active, ok := StateOf(n).(Active)
	if !ok {
		return false
	}
	last := active.SortIndex
	n.LastBucket = active.Bucket
	n.LastSortIndex = &last
	n.Bucket = entity.BucketArchive
	n.SortIndex = archiveIndex
	n.DeletedAt = &now
	return true
}

// ResolveRestoreBucket decides where a restore lands:
//
//	explicit target        -> target (must be a quadrant)
//	origin bucket          -> origin
//	last bucket            -> last
//	current bucket         -> current (when it is a quadrant)
//	otherwise              -> DefaultRestoreBucket
func ResolveRestoreBucket(n *entity.Note, target *entity.Bucket) (entity.Bucket, error) {
	if target != nil {
		if !target.IsContent() {
			return "", ErrNotContentBucket
		}
		return *target, nil
	}
	for _, candidate := range []entity.Bucket{n.OriginBucket, n.LastBucket, n.Bucket} {
		if candidate.IsContent() {
			return candidate, nil
		}
	}
	return DefaultRestoreBucket, nil
}

// Restore puts an archived note back at sortIndex in bucket and clears the
// archive bookkeeping.
func Restore(n *entity.Note, bucket entity.Bucket, sortIndex int64) error {
	if _, ok := StateOf(n).(Archived); !ok {
		return ErrNoteNotArchived
	}
	if !bucket.IsContent() {
		return ErrNotContentBucket
	}
	n.Bucket = bucket
	n.SortIndex = sortIndex
	n.DeletedAt = nil
	n.LastBucket = ""
	n.LastSortIndex = nil
	return nil
}

// HealOrigin fills a missing OriginBucket from the best known quadrant.
// It never overwrites an existing value.
func HealOrigin(n *entity.Note) bool {
	if n.OriginBucket != "" {
		return false
	}
	switch {
	case n.Bucket.IsContent():
		n.OriginBucket = n.Bucket
	case n.LastBucket.IsContent():
		n.OriginBucket = n.LastBucket
	default:
		return false
	}
	return true
}

// DisplayBucket is the quadrant whose colour a note is drawn with.
func DisplayBucket(n *entity.Note) entity.Bucket {
	if n.OriginBucket.IsContent() {
		return n.OriginBucket
	}
	if n.Bucket.IsContent() {
		return n.Bucket
	}
	return n.LastBucket
}

var palette = map[entity.Bucket]string{
	entity.BucketAcquis:       "#16a34a",
	entity.BucketFaiblesses:   "#ea580c",
	entity.BucketOpportunites: "#2563eb",
	entity.BucketMenaces:      "#dc2626",
}

func ColorOf(b entity.Bucket) string {
	if c, ok := palette[b]; ok {
		return c
	}
	return "#6b7280"
}
