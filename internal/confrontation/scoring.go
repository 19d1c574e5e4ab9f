// Package confrontation scores the AFOM confrontation matrix. Rows are the
// shortlisted opportunities then threats, columns the shortlisted assets then
// weaknesses.
package confrontation

import (
	"afom-board-be/internal/entity"

	"github.com/google/uuid"
)

// RowBuckets and ColumnBuckets fix the matrix layout.
var (
	RowBuckets    = []entity.Bucket{entity.BucketOpportunites, entity.BucketMenaces}
	ColumnBuckets = []entity.Bucket{entity.BucketAcquis, entity.BucketFaiblesses}
)

type Scores struct {
	Rows    map[uuid.UUID]int
	Columns map[uuid.UUID]int
}

type cellSet map[entity.Cell]struct{}

func newCellSet(cells []entity.Cell) cellSet {
	set := make(cellSet, len(cells))
	for _, c := range cells {
		set[c] = struct{}{}
	}
	return set
}

func (s cellSet) has(row, col uuid.UUID) bool {
	_, ok := s[entity.Cell{RowId: row, ColumnId: col}]
	return ok
}

func (s cellSet) countRow(row uuid.UUID, cols []entity.ShortlistItem) int {
	n := 0
	for _, c := range cols {
		if s.has(row, c.NoteId) {
			n++
		}
	}
	return n
}

func (s cellSet) countColumn(col uuid.UUID, rows []entity.ShortlistItem) int {
	n := 0
	for _, r := range rows {
		if s.has(r.NoteId, col) {
			n++
		}
	}
	return n
}

// Score derives per-row and per-column integers from the checked cells.
//
//	opportunity row = checked assets - checked weaknesses
//	threat row      = -(checked assets + checked weaknesses)
//	asset column    = checked opportunity rows
//	weakness column = -(checked threat rows)
func Score(s entity.Shortlist, checks []entity.Cell) Scores {
	set := newCellSet(checks)
	scores := Scores{
		Rows:    make(map[uuid.UUID]int),
		Columns: make(map[uuid.UUID]int),
	}

	for _, r := range s.Opportunites {
		scores.Rows[r.NoteId] = set.countRow(r.NoteId, s.Acquis) - set.countRow(r.NoteId, s.Faiblesses)
	}
	for _, r := range s.Menaces {
		scores.Rows[r.NoteId] = -(set.countRow(r.NoteId, s.Acquis) + set.countRow(r.NoteId, s.Faiblesses))
	}
	for _, c := range s.Acquis {
		scores.Columns[c.NoteId] = set.countColumn(c.NoteId, s.Opportunites)
	}
	for _, c := range s.Faiblesses {
		scores.Columns[c.NoteId] = -set.countColumn(c.NoteId, s.Menaces)
	}

	return scores
}

// Rows returns the row items in matrix order with their bucket.
func Rows(s entity.Shortlist) []Axis {
	return axes(s, RowBuckets)
}

// Columns returns the column items in matrix order with their bucket.
func Columns(s entity.Shortlist) []Axis {
	return axes(s, ColumnBuckets)
}

type Axis struct {
	Bucket entity.Bucket
	Item   entity.ShortlistItem
}

func axes(s entity.Shortlist, buckets []entity.Bucket) []Axis {
	var out []Axis
	for _, b := range buckets {
		for _, it := range s.Items(b) {
			out = append(out, Axis{Bucket: b, Item: it})
		}
	}
	return out
}
