package service

import (
	"context"
	"testing"

	"afom-board-be/internal/confrontation"
	"afom-board-be/internal/dto"
	"afom-board-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfrontationGetEmpty(t *testing.T) {
	svc := NewConfrontationService(newTestFactory(t), nil)

	res, err := svc.Get(context.Background(), "S1")
	require.NoError(t, err)

	assert.Equal(t, "S1", res.SessionId)
	assert.Empty(t, res.Checks)
	assert.Empty(t, res.Rows)
	assert.Empty(t, res.Columns)
}

func TestConfrontationSaveScoresAndRefreshesContent(t *testing.T) {
	f := newBoardFixture(t)
	asset := f.submit(t, "S1", "acquis", "équipe soudée")
	weak := f.submit(t, "S1", "faiblesses", "budget serré")
	opp := f.submit(t, "S1", "opportunites", "nouveau marché")
	threat := f.submit(t, "S1", "menaces", "concurrent agressif")
	svc := NewConfrontationService(f.factory, nil)
	ctx := context.Background()

	req := &dto.SaveConfrontationRequest{
		Shortlist: entity.Shortlist{
			Acquis:       []entity.ShortlistItem{{NoteId: asset.Id, Content: "stale"}},
			Faiblesses:   []entity.ShortlistItem{{NoteId: weak.Id}},
			Opportunites: []entity.ShortlistItem{{NoteId: opp.Id}},
			Menaces:      []entity.ShortlistItem{{NoteId: threat.Id}},
		},
		Checks: []entity.Cell{
			{RowId: opp.Id, ColumnId: asset.Id},
			{RowId: opp.Id, ColumnId: asset.Id},
			{RowId: threat.Id, ColumnId: weak.Id},
		},
	}
	saved, err := svc.Save(ctx, "S1", req)
	require.NoError(t, err)

	assert.Equal(t, "équipe soudée", saved.Shortlist.Acquis[0].Content)
	assert.Len(t, saved.Checks, 2)

	rows := map[uuid.UUID]int{}
	for _, r := range saved.Rows {
		rows[r.NoteId] = r.Score
	}
	assert.Equal(t, 1, rows[opp.Id])
	assert.Equal(t, -1, rows[threat.Id])

	cols := map[uuid.UUID]int{}
	for _, c := range saved.Columns {
		cols[c.NoteId] = c.Score
	}
	assert.Equal(t, 1, cols[asset.Id])
	assert.Equal(t, -1, cols[weak.Id])

	got, err := svc.Get(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, saved.Checks, got.Checks)
	assert.Equal(t, saved.Rows, got.Rows)
}

func TestConfrontationSaveRejectsForeignAndArchivedNotes(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	other := f.submit(t, "S2", "acquis", "ailleurs")
	archived := f.submit(t, "S1", "acquis", "archivée")
	_, err := f.service.Archive(ctx, "S1", archived.Id)
	require.NoError(t, err)
	svc := NewConfrontationService(f.factory, nil)

	_, err = svc.Save(ctx, "S1", &dto.SaveConfrontationRequest{
		Shortlist: entity.Shortlist{Acquis: []entity.ShortlistItem{{NoteId: other.Id}}},
	})
	assert.ErrorIs(t, err, ErrUnknownShortlistNote)

	_, err = svc.Save(ctx, "S1", &dto.SaveConfrontationRequest{
		Shortlist: entity.Shortlist{Acquis: []entity.ShortlistItem{{NoteId: archived.Id}}},
	})
	assert.ErrorIs(t, err, ErrArchivedShortlist)
}

func TestConfrontationRejectsNoteListedUnderAnotherQuadrant(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	asset := f.submit(t, "S1", "acquis", "équipe soudée")
	misplaced := f.submit(t, "S1", "acquis", "réseau")
	svc := NewConfrontationService(f.factory, confrontation.NewLexicalMatcher())

	wrong := entity.Shortlist{
		Acquis:  []entity.ShortlistItem{{NoteId: asset.Id}},
		Menaces: []entity.ShortlistItem{{NoteId: misplaced.Id}},
	}
	_, err := svc.Save(ctx, "S1", &dto.SaveConfrontationRequest{
		Shortlist: wrong,
		Checks:    []entity.Cell{{RowId: misplaced.Id, ColumnId: asset.Id}},
	})
	assert.ErrorIs(t, err, ErrShortlistBucketMismatch)
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = svc.AutoFill(ctx, "S1", &dto.AutoFillRequest{Shortlist: wrong})
	assert.ErrorIs(t, err, ErrShortlistBucketMismatch)

	saved, err := svc.Get(ctx, "S1")
	require.NoError(t, err)
	assert.Empty(t, saved.Rows)
}

func TestConfrontationSaveRejectsOversizedShortlist(t *testing.T) {
	svc := NewConfrontationService(newTestFactory(t), nil)

	items := make([]entity.ShortlistItem, confrontation.MaxPerBucket+1)
	for i := range items {
		items[i] = entity.ShortlistItem{NoteId: uuid.New()}
	}
	_, err := svc.Save(context.Background(), "S1", &dto.SaveConfrontationRequest{
		Shortlist: entity.Shortlist{Menaces: items},
	})
	assert.ErrorIs(t, err, confrontation.ErrShortlistTooLong)
}

func TestConfrontationAutoFillDoesNotPersist(t *testing.T) {
	f := newBoardFixture(t)
	asset := f.submit(t, "S1", "acquis", "réseau de partenaires")
	opp := f.submit(t, "S1", "opportunites", "partenaires européens")
	svc := NewConfrontationService(f.factory, confrontation.NewLexicalMatcher())
	ctx := context.Background()

	res, err := svc.AutoFill(ctx, "S1", &dto.AutoFillRequest{Shortlist: entity.Shortlist{
		Acquis:       []entity.ShortlistItem{{NoteId: asset.Id}},
		Opportunites: []entity.ShortlistItem{{NoteId: opp.Id}},
	}})
	require.NoError(t, err)
	assert.Equal(t, []entity.Cell{{RowId: opp.Id, ColumnId: asset.Id}}, res.Checks)

	saved, err := svc.Get(ctx, "S1")
	require.NoError(t, err)
	assert.Empty(t, saved.Checks)
}
