package board

import (
	"testing"
	"time"

	"afom-board-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeBucket(b entity.Bucket, n int) []*entity.Note {
	notes := make([]*entity.Note, n)
	for i := range notes {
		notes[i] = &entity.Note{
			Id:           uuid.New(),
			SessionId:    "S1",
			Bucket:       b,
			OriginBucket: b,
			SortIndex:    int64(i),
		}
	}
	return notes
}

func ids(notes []*entity.Note) []uuid.UUID {
	out := make([]uuid.UUID, len(notes))
	for i, n := range notes {
		out[i] = n.Id
	}
	return out
}

func indexes(notes []*entity.Note) []int64 {
	out := make([]int64, len(notes))
	for i, n := range notes {
		out[i] = n.SortIndex
	}
	return out
}

func TestSortIsStableOnTies(t *testing.T) {
	a := &entity.Note{Id: uuid.New(), SortIndex: 5}
	b := &entity.Note{Id: uuid.New(), SortIndex: 1}
	c := &entity.Note{Id: uuid.New(), SortIndex: 5}
	notes := []*entity.Note{a, b, c}

	Sort(notes)

	assert.Equal(t, []uuid.UUID{b.Id, a.Id, c.Id}, ids(notes))
}

func TestPlanMoveWithinBucket(t *testing.T) {
	notes := makeBucket(entity.BucketAcquis, 4)

	plan, err := PlanMove(notes, nil, notes[3].Id, entity.BucketAcquis, 1)
	require.NoError(t, err)

	assert.False(t, plan.NoOp)
	assert.False(t, plan.CrossBucket())
	assert.Equal(t, []uuid.UUID{notes[0].Id, notes[3].Id, notes[1].Id, notes[2].Id}, ids(plan.Destination))
	assert.Equal(t, []int64{0, 1, 2, 3}, indexes(plan.Destination))
	assert.Len(t, plan.Changes, 4)

	// inputs untouched
	assert.Equal(t, []int64{0, 1, 2, 3}, indexes(notes))
}

func TestPlanMoveAcrossBuckets(t *testing.T) {
	source := makeBucket(entity.BucketOpportunites, 4)
	dest := makeBucket(entity.BucketMenaces, 2)

	plan, err := PlanMove(source, dest, source[3].Id, entity.BucketMenaces, 1)
	require.NoError(t, err)

	require.True(t, plan.CrossBucket())
	assert.Equal(t, entity.BucketOpportunites, plan.SourceBucket)
	assert.Equal(t, entity.BucketMenaces, plan.Moved.Bucket)
	assert.Equal(t, entity.BucketOpportunites, plan.Moved.OriginBucket)

	assert.Equal(t, []uuid.UUID{source[0].Id, source[1].Id, source[2].Id}, ids(plan.Source))
	assert.Equal(t, []int64{0, 1, 2}, indexes(plan.Source))

	assert.Equal(t, []uuid.UUID{dest[0].Id, source[3].Id, dest[1].Id}, ids(plan.Destination))
	assert.Equal(t, []int64{0, 1, 2}, indexes(plan.Destination))
	assert.Len(t, plan.Changes, 6)
}

func TestPlanMoveClampsIndex(t *testing.T) {
	tests := []struct {
		name    string
		target  int
		wantPos int
	}{
		{name: "negative goes first", target: -7, wantPos: 0},
		{name: "past the end goes last", target: 99, wantPos: 3},
		{name: "exact end", target: 3, wantPos: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := makeBucket(entity.BucketAcquis, 4)
			plan, err := PlanMove(notes, nil, notes[1].Id, entity.BucketAcquis, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPos, IndexOf(plan.Destination, notes[1].Id))
			assert.Equal(t, []int64{0, 1, 2, 3}, indexes(plan.Destination))
		})
	}
}

func TestPlanMoveSamePositionIsNoOp(t *testing.T) {
	notes := makeBucket(entity.BucketFaiblesses, 3)

	plan, err := PlanMove(notes, nil, notes[1].Id, entity.BucketFaiblesses, 1)
	require.NoError(t, err)

	assert.True(t, plan.NoOp)
	assert.Empty(t, plan.Changes)
	assert.Equal(t, ids(notes), ids(plan.Source))
}

func TestPlanMoveRenormalizesSparseIndexes(t *testing.T) {
	notes := makeBucket(entity.BucketAcquis, 3)
	notes[0].SortIndex = 1700000000000
	notes[1].SortIndex = 1700000000500
	notes[2].SortIndex = 1700000000900

	plan, err := PlanMove(notes, nil, notes[0].Id, entity.BucketAcquis, 2)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{notes[1].Id, notes[2].Id, notes[0].Id}, ids(plan.Destination))
	assert.Equal(t, []int64{0, 1, 2}, indexes(plan.Destination))
}

func TestPlanMoveUnknownNote(t *testing.T) {
	notes := makeBucket(entity.BucketAcquis, 2)

	_, err := PlanMove(notes, nil, uuid.New(), entity.BucketAcquis, 0)
	assert.ErrorIs(t, err, ErrNoteNotInSourceList)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestPlanMoveInvalidBucket(t *testing.T) {
	notes := makeBucket(entity.BucketAcquis, 2)

	_, err := PlanMove(notes, nil, notes[0].Id, entity.Bucket("swot"), 0)
	assert.ErrorIs(t, err, ErrInvalidBucket)
}

func TestRelativeTarget(t *testing.T) {
	assert.Equal(t, 3, RelativeTarget(2, 1, 0, 2))
	assert.Equal(t, 1, RelativeTarget(2, -1, 0, 2))
	assert.Equal(t, 4, RelativeTarget(2, 0, 1, 2))
	assert.Equal(t, 0, RelativeTarget(2, 0, -1, 2))
	assert.Equal(t, 3, RelativeTarget(2, 0, 1, 0))
}

func TestAppendIndex(t *testing.T) {
	clock := time.UnixMilli(1000)
	seq := NewSequencer(func() time.Time { return clock })

	t.Run("uses the clock when the bucket is dense", func(t *testing.T) {
		assert.Equal(t, int64(1000), AppendIndex(seq, makeBucket(entity.BucketAcquis, 3)))
	})

	t.Run("stays above existing values", func(t *testing.T) {
		existing := makeBucket(entity.BucketAcquis, 1)
		existing[0].SortIndex = 5000
		assert.Equal(t, int64(5001), AppendIndex(seq, existing))
	})
}

func TestSequencerIsStrictlyIncreasing(t *testing.T) {
	frozen := time.UnixMilli(42)
	seq := NewSequencer(func() time.Time { return frozen })

	prev := seq.Next()
	for i := 0; i < 100; i++ {
		next := seq.Next()
		require.Greater(t, next, prev)
		prev = next
	}
}

func TestSortBoardGroupsBuckets(t *testing.T) {
	a := &entity.Note{Id: uuid.New(), Bucket: entity.BucketMenaces, SortIndex: 1}
	b := &entity.Note{Id: uuid.New(), Bucket: entity.BucketAcquis, SortIndex: 9}
	c := &entity.Note{Id: uuid.New(), Bucket: entity.BucketArchive, SortIndex: 0}
	d := &entity.Note{Id: uuid.New(), Bucket: entity.BucketAcquis, SortIndex: 2}

	notes := []*entity.Note{a, b, c, d}
	SortBoard(notes)

	assert.Equal(t, []*entity.Note{d, b, a, c}, notes)
}
