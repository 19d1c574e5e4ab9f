package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"afom-board-be/internal/dto"
	"afom-board-be/internal/model"
	"afom-board-be/internal/pkg/logger"
	"afom-board-be/internal/repository/unitofwork"
	"afom-board-be/pkg/database"
	"afom-board-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()

	db, err := database.NewSQLiteDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, model.All()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return unitofwork.NewRepositoryFactory(db)
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []dto.BoardChangeMessage
}

func (p *recordingPublisher) Publish(_ context.Context, payload []byte) error {
	var msg dto.BoardChangeMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return err
	}
	p.mu.Lock()
	p.messages = append(p.messages, msg)
	p.mu.Unlock()
	return nil
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		out = append(out, m.Kind)
	}
	return out
}

func (p *recordingPublisher) last() dto.BoardChangeMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.messages[len(p.messages)-1]
}

type recordingEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingEvents) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	return nil
}

func (r *recordingEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType())
	}
	return out
}

type boardFixture struct {
	factory   unitofwork.RepositoryFactory
	service   IBoardService
	publisher *recordingPublisher
	events    *recordingEvents
}

func newBoardFixture(t *testing.T) *boardFixture {
	t.Helper()
	f := &boardFixture{
		factory:   newTestFactory(t),
		publisher: &recordingPublisher{},
		events:    &recordingEvents{},
	}
	f.service = NewBoardService(f.factory, f.publisher, f.events, logger.NewNopLogger(), BoardServiceConfig{
		NudgeColumns: 2,
		Now:          func() time.Time { return testNow },
	})
	return f
}

func (f *boardFixture) submit(t *testing.T, session, bucket, content string) dto.NoteResponse {
	t.Helper()
	res, err := f.service.Submit(context.Background(), session, &dto.SubmitNoteRequest{
		Bucket:  bucket,
		Author:  "Alice",
		Content: content,
	})
	require.NoError(t, err)
	return *res
}

func (f *boardFixture) list(t *testing.T, session, bucket string) []dto.NoteResponse {
	t.Helper()
	res, err := f.service.List(context.Background(), session, bucket)
	require.NoError(t, err)
	return res
}

func contents(notes []dto.NoteResponse) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Content
	}
	return out
}

func sortIndexes(notes []dto.NoteResponse) []int64 {
	out := make([]int64, len(notes))
	for i, n := range notes {
		out[i] = n.SortIndex
	}
	return out
}
