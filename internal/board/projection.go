package board

import (
	"afom-board-be/internal/entity"

	"github.com/google/uuid"
)

type ChangeKind string

const (
	ChangeSubmitted ChangeKind = "submitted"
	ChangeMoved     ChangeKind = "moved"
	ChangeArchived  ChangeKind = "archived"
	ChangeRestored  ChangeKind = "restored"
	ChangeEdited    ChangeKind = "edited"
	ChangeDeleted   ChangeKind = "deleted"
	ChangeHealed    ChangeKind = "healed"
)

// Change is what a committed mutation tells live viewers. From holds the
// bucket a note occupied before the mutation, for notes that left a bucket
// or were deleted.
type Change struct {
	SessionId  string
	Kind       ChangeKind
	Notes      []*entity.Note
	RemovedIds []uuid.UUID
	From       map[uuid.UUID]entity.Bucket
}

// Departed records that id left bucket.
func Departed(id uuid.UUID, bucket entity.Bucket) map[uuid.UUID]entity.Bucket {
	return map[uuid.UUID]entity.Bucket{id: bucket}
}

// Filter narrows a live view to one bucket. The zero value matches everything.
type Filter struct {
	Bucket entity.Bucket
}

func (f Filter) Matches(n *entity.Note) bool {
	return f.Bucket == "" || n.Bucket == f.Bucket
}

// Projection is a change as seen through one viewer's filter.
type Projection struct {
	Upserts  []*entity.Note
	Removals []uuid.UUID
}

func (p Projection) Empty() bool {
	return len(p.Upserts) == 0 && len(p.Removals) == 0
}

// Project splits a change into notes the viewer must show and ids it must drop.
// A note that left the filtered bucket becomes a removal. Notes that were
// never in the filtered bucket are not reported.
func Project(f Filter, c Change) Projection {
	var p Projection
	for _, n := range c.Notes {
		if f.Matches(n) {
			p.Upserts = append(p.Upserts, n)
		} else if c.wasIn(n.Id, f.Bucket) {
			p.Removals = append(p.Removals, n.Id)
		}
	}
	for _, id := range c.RemovedIds {
		// a deletion with no recorded bucket reaches every viewer
		if from, ok := c.From[id]; f.Bucket == "" || !ok || from == f.Bucket {
			p.Removals = append(p.Removals, id)
		}
	}
	return p
}

func (c Change) wasIn(id uuid.UUID, bucket entity.Bucket) bool {
	from, ok := c.From[id]
	return ok && bucket != "" && from == bucket
}
