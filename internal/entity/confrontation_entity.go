package entity

import (
	"time"

	"github.com/google/uuid"
)

type ShortlistItem struct {
	NoteId  uuid.UUID `json:"note_id"`
	Content string    `json:"content"`
}

// Shortlist is the facilitator-curated selection, at most four notes per quadrant.
type Shortlist struct {
	Acquis       []ShortlistItem `json:"acquis"`
	Faiblesses   []ShortlistItem `json:"faiblesses"`
	Opportunites []ShortlistItem `json:"opportunites"`
	Menaces      []ShortlistItem `json:"menaces"`
}

func (s Shortlist) Items(b Bucket) []ShortlistItem {
	switch b {
	case BucketAcquis:
		return s.Acquis
	case BucketFaiblesses:
		return s.Faiblesses
	case BucketOpportunites:
		return s.Opportunites
	case BucketMenaces:
		return s.Menaces
	}
	return nil
}

// Cell is one checked intersection of the matrix.
type Cell struct {
	RowId    uuid.UUID `json:"row_id"`
	ColumnId uuid.UUID `json:"column_id"`
}

type Confrontation struct {
	SessionId string
	Shortlist Shortlist
	Checks    []Cell
	CreatedAt time.Time
	UpdatedAt *time.Time
}
