package board

import (
	"sort"

	"afom-board-be/internal/entity"

	"github.com/google/uuid"
)

// Sort orders notes by SortIndex ascending. Ties keep their input order.
func Sort(notes []*entity.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].SortIndex < notes[j].SortIndex
	})
}

// Sorted returns a sorted copy of notes. The notes themselves are cloned so the
// caller's slice is never mutated.
func Sorted(notes []*entity.Note) []*entity.Note {
	out := make([]*entity.Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Clone())
	}
	Sort(out)
	return out
}

func IndexOf(notes []*entity.Note, id uuid.UUID) int {
	for i, n := range notes {
		if n.Id == id {
			return i
		}
	}
	return -1
}

// Clamp keeps index inside [0, size].
func Clamp(index, size int) int {
	if index < 0 {
		return 0
	}
	if index > size {
		return size
	}
	return index
}

// Renormalize rewrites SortIndex to a dense 0..n-1 sequence in slice order.
func Renormalize(notes []*entity.Note) {
	for i, n := range notes {
		n.SortIndex = int64(i)
	}
}

// MovePlan is the outcome of a move: the resulting ordered lists and every
// note whose position must be written in one batch.
type MovePlan struct {
	Moved        *entity.Note
	SourceBucket entity.Bucket
	Source       []*entity.Note
	Destination  []*entity.Note
	Changes      []*entity.Note
	NoOp         bool
}

func (p *MovePlan) CrossBucket() bool {
	return p.SourceBucket != p.Moved.Bucket
}

// PlanMove removes the note from the ordered source list and inserts it into
// the destination list at the clamped index, then renormalizes every affected
// bucket. destination is ignored when target equals the source bucket.
// Inputs are not mutated.
func PlanMove(source, destination []*entity.Note, noteID uuid.UUID, target entity.Bucket, targetIndex int) (*MovePlan, error) {
	if !target.IsValid() {
		return nil, ErrInvalidBucket
	}

	src := Sorted(source)
	from := IndexOf(src, noteID)
	if from < 0 {
		return nil, ErrNoteNotInSourceList
	}
	moving := src[from]
	sourceBucket := moving.Bucket
	src = append(src[:from], src[from+1:]...)

	if target == sourceBucket {
		to := Clamp(targetIndex, len(src))
		if to == from {
			return &MovePlan{
				Moved:        moving,
				SourceBucket: sourceBucket,
				Source:       insertAt(src, moving, from),
				NoOp:         true,
			}, nil
		}
		list := insertAt(src, moving, to)
		Renormalize(list)
		return &MovePlan{
			Moved:        moving,
			SourceBucket: sourceBucket,
			Source:       list,
			Destination:  list,
			Changes:      list,
		}, nil
	}

	dst := Sorted(destination)
	if i := IndexOf(dst, noteID); i >= 0 {
		dst = append(dst[:i], dst[i+1:]...)
	}
	to := Clamp(targetIndex, len(dst))
	moving.Bucket = target
	dst = insertAt(dst, moving, to)

	Renormalize(src)
	Renormalize(dst)

	changes := make([]*entity.Note, 0, len(src)+len(dst))
	changes = append(changes, src...)
	changes = append(changes, dst...)

	return &MovePlan{
		Moved:        moving,
		SourceBucket: sourceBucket,
		Source:       src,
		Destination:  dst,
		Changes:      changes,
	}, nil
}

// RelativeTarget computes the index a nudge lands on. A row step covers
// columns slots.
func RelativeTarget(current, stepDelta, rowDelta, columns int) int {
	if columns < 1 {
		columns = 1
	}
	return current + stepDelta + rowDelta*columns
}

// AppendIndex returns a sort index greater than every note in existing,
// preferring the monotonic submission clock so concurrent appenders still
// get a total order.
func AppendIndex(seq *Sequencer, existing []*entity.Note) int64 {
	next := seq.Next()
	for _, n := range existing {
		if n.SortIndex >= next {
			next = n.SortIndex + 1
		}
	}
	return next
}

func insertAt(list []*entity.Note, n *entity.Note, index int) []*entity.Note {
	out := make([]*entity.Note, 0, len(list)+1)
	out = append(out, list[:index]...)
	out = append(out, n)
	out = append(out, list[index:]...)
	return out
}

var bucketRank = map[entity.Bucket]int{
	entity.BucketAcquis:       0,
	entity.BucketFaiblesses:   1,
	entity.BucketOpportunites: 2,
	entity.BucketMenaces:      3,
	entity.BucketArchive:      4,
}

// SortBoard orders a whole board: quadrants in board order, archive last,
// each bucket by SortIndex. Ties keep their input order.
func SortBoard(notes []*entity.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		ri, rj := bucketRank[notes[i].Bucket], bucketRank[notes[j].Bucket]
		if ri != rj {
			return ri < rj
		}
		return notes[i].SortIndex < notes[j].SortIndex
	})
}
