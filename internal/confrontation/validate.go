package confrontation

import (
	"fmt"

	"afom-board-be/internal/entity"

	"github.com/google/uuid"
)

const MaxPerBucket = 4

var (
	ErrShortlistTooLong   = fmt.Errorf("%w: at most %d notes per quadrant", entity.ErrValidation, MaxPerBucket)
	ErrDuplicateNote      = fmt.Errorf("%w: a note can only be shortlisted once", entity.ErrValidation)
	ErrUnknownCell        = fmt.Errorf("%w: checked cell does not reference a shortlisted row and column", entity.ErrValidation)
	ErrEmptyShortlistNote = fmt.Errorf("%w: shortlisted note id is required", entity.ErrValidation)
)

// Validate checks the shortlist shape and returns the checks with duplicates
// removed, in their original order.
func Validate(s entity.Shortlist, checks []entity.Cell) ([]entity.Cell, error) {
	seen := make(map[uuid.UUID]struct{})
	for _, b := range entity.ContentBuckets {
		items := s.Items(b)
		if len(items) > MaxPerBucket {
			return nil, fmt.Errorf("%w (%s has %d)", ErrShortlistTooLong, b, len(items))
		}
		for _, it := range items {
			if it.NoteId == uuid.Nil {
				return nil, ErrEmptyShortlistNote
			}
			if _, dup := seen[it.NoteId]; dup {
				return nil, ErrDuplicateNote
			}
			seen[it.NoteId] = struct{}{}
		}
	}

	rows := idSet(Rows(s))
	cols := idSet(Columns(s))

	out := make([]entity.Cell, 0, len(checks))
	done := make(map[entity.Cell]struct{}, len(checks))
	for _, c := range checks {
		if _, ok := rows[c.RowId]; !ok {
			return nil, ErrUnknownCell
		}
		if _, ok := cols[c.ColumnId]; !ok {
			return nil, ErrUnknownCell
		}
		if _, dup := done[c]; dup {
			continue
		}
		done[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

// NoteIds lists every shortlisted note id.
func NoteIds(s entity.Shortlist) []uuid.UUID {
	var out []uuid.UUID
	for _, b := range entity.ContentBuckets {
		for _, it := range s.Items(b) {
			out = append(out, it.NoteId)
		}
	}
	return out
}

func idSet(axes []Axis) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(axes))
	for _, a := range axes {
		set[a.Item.NoteId] = struct{}{}
	}
	return set
}
