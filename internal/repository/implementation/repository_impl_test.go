package implementation

import (
	"context"
	"testing"
	"time"

	"afom-board-be/internal/entity"
	"afom-board-be/internal/model"
	"afom-board-be/internal/repository/specification"
	"afom-board-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, model.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newNote(session string, bucket entity.Bucket, index int64) *entity.Note {
	return &entity.Note{
		Id:           uuid.New(),
		SessionId:    session,
		Bucket:       bucket,
		OriginBucket: bucket,
		Content:      "note",
		Author:       "Alice",
		SortIndex:    index,
	}
}

func TestNoteRepositoryPositionsAndCounts(t *testing.T) {
	repo := NewNoteRepository(newTestDB(t))
	ctx := context.Background()

	a := newNote("S1", entity.BucketAcquis, 10)
	b := newNote("S1", entity.BucketAcquis, 20)
	c := newNote("S1", entity.BucketMenaces, 5)
	other := newNote("S2", entity.BucketAcquis, 1)
	for _, n := range []*entity.Note{a, b, c, other} {
		require.NoError(t, repo.Create(ctx, n))
	}

	b.SortIndex = 0
	a.SortIndex = 1
	require.NoError(t, repo.UpdatePositions(ctx, []*entity.Note{b, a}))

	notes, err := repo.FindAll(ctx,
		specification.BySession{SessionID: "S1"},
		specification.ByBucket{Bucket: entity.BucketAcquis},
		specification.OrderBySortIndex{},
	)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, b.Id, notes[0].Id)
	assert.Equal(t, a.Id, notes[1].Id)

	counts, err := repo.CountByBucket(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[entity.BucketAcquis])
	assert.Equal(t, int64(1), counts[entity.BucketMenaces])

	others, err := repo.FindAll(ctx, specification.BySession{SessionID: "S1"}, specification.ExcludeBucket{Bucket: entity.BucketMenaces})
	require.NoError(t, err)
	assert.Len(t, others, 2)
}

func TestNoteRepositoryArchiveFieldsRoundTrip(t *testing.T) {
	repo := NewNoteRepository(newTestDB(t))
	ctx := context.Background()

	n := newNote("S1", entity.BucketFaiblesses, 3)
	require.NoError(t, repo.Create(ctx, n))

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	last := int64(3)
	n.Bucket = entity.BucketArchive
	n.LastBucket = entity.BucketFaiblesses
	n.LastSortIndex = &last
	n.DeletedAt = &at
	require.NoError(t, repo.Update(ctx, n))

	got, err := repo.FindOne(ctx, specification.ByID{ID: n.Id})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.BucketArchive, got.Bucket)
	assert.Equal(t, entity.BucketFaiblesses, got.LastBucket)
	require.NotNil(t, got.LastSortIndex)
	assert.Equal(t, int64(3), *got.LastSortIndex)
	require.NotNil(t, got.DeletedAt)
	assert.True(t, at.Equal(*got.DeletedAt))

	missing, err := repo.FindOne(ctx, specification.ByID{ID: uuid.New()})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestNoteRepositoryHealOriginOnlyOnce(t *testing.T) {
	repo := NewNoteRepository(newTestDB(t))
	ctx := context.Background()

	n := newNote("S1", entity.BucketOpportunites, 0)
	n.OriginBucket = ""
	require.NoError(t, repo.Create(ctx, n))

	legacy, err := repo.FindAll(ctx, specification.BySession{SessionID: "S1"}, specification.MissingOrigin{})
	require.NoError(t, err)
	require.Len(t, legacy, 1)
	assert.Equal(t, n.Id, legacy[0].Id)

	changed, err := repo.HealOrigin(ctx, n.Id, entity.BucketOpportunites)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.HealOrigin(ctx, n.Id, entity.BucketAcquis)
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := repo.FindOne(ctx, specification.ByID{ID: n.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.BucketOpportunites, got.OriginBucket)

	legacy, err = repo.FindAll(ctx, specification.BySession{SessionID: "S1"}, specification.MissingOrigin{})
	require.NoError(t, err)
	assert.Empty(t, legacy)
}

func TestSessionRepositoryUpsertKeepsActivity(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	ctx := context.Background()
	at := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.TouchActivity(ctx, "S1", at))
	require.NoError(t, repo.Upsert(ctx, &entity.Session{Token: "S1", ProjectName: "P"}))

	got, err := repo.FindByToken(ctx, "S1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "P", got.ProjectName)
	require.NotNil(t, got.LastActivityAt)
	assert.True(t, at.Equal(*got.LastActivityAt))

	none, err := repo.FindByToken(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestConfrontationRepositoryUpsert(t *testing.T) {
	repo := NewConfrontationRepository(newTestDB(t))
	ctx := context.Background()
	row, col := uuid.New(), uuid.New()

	first := &entity.Confrontation{
		SessionId: "S1",
		Shortlist: entity.Shortlist{
			Opportunites: []entity.ShortlistItem{{NoteId: row, Content: "o"}},
			Acquis:       []entity.ShortlistItem{{NoteId: col, Content: "a"}},
		},
	}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &entity.Confrontation{SessionId: "S1", Shortlist: first.Shortlist, Checks: []entity.Cell{{RowId: row, ColumnId: col}}}
	require.NoError(t, repo.Upsert(ctx, second))

	got, err := repo.FindBySession(ctx, "S1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []entity.Cell{{RowId: row, ColumnId: col}}, got.Checks)
	assert.Equal(t, "o", got.Shortlist.Opportunites[0].Content)

	none, err := repo.FindBySession(ctx, "S2")
	require.NoError(t, err)
	assert.Nil(t, none)
}
