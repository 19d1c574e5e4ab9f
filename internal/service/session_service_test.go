package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"afom-board-be/internal/dto"
	"afom-board-be/internal/entity"
	"afom-board-be/internal/pkg/logger"
	"afom-board-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionTokenShape(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-F]{8}$`)
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		token := NewSessionToken()
		assert.Regexp(t, pattern, token)
		seen[token] = struct{}{}
	}
	assert.Greater(t, len(seen), 45)
}

func TestSessionCreateAndShow(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewSessionService(factory, "http://board.local/")
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateSessionRequest{ProjectName: " Refonte ", ThemeName: "RH"})
	require.NoError(t, err)
	assert.Equal(t, "Refonte", created.ProjectName)
	assert.Equal(t, "http://board.local/?session="+created.Token, created.Links.Facilitator)
	assert.Equal(t, "http://board.local/?session="+created.Token+"&mode=participant", created.Links.Participant)

	shown, err := svc.Show(ctx, " "+created.Token+" ")
	require.NoError(t, err)
	assert.Equal(t, created.Token, shown.Token)
	assert.Equal(t, "RH", shown.ThemeName)
}

func TestSessionShowUnknownTokenIsEmpty(t *testing.T) {
	svc := NewSessionService(newTestFactory(t), "http://board.local")

	res, err := svc.Show(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "ABC123", res.Token)
	assert.Empty(t, res.ProjectName)
	assert.Nil(t, res.LastActivityAt)
	assert.Equal(t, int64(0), res.Counts.Active)
}

func TestSessionShowCountsNotes(t *testing.T) {
	f := newBoardFixture(t)
	f.submit(t, "S1", "acquis", "a")
	f.submit(t, "S1", "menaces", "b")
	svc := NewSessionService(f.factory, "http://board.local")

	res, err := svc.Show(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Counts.Active)
}

func TestSessionUpdateUpserts(t *testing.T) {
	svc := NewSessionService(newTestFactory(t), "http://board.local")
	ctx := context.Background()

	_, err := svc.Update(ctx, "NEW1", &dto.UpdateSessionRequest{ProjectName: "P", ThemeName: "T"})
	require.NoError(t, err)

	res, err := svc.Update(ctx, "new1", &dto.UpdateSessionRequest{ProjectName: "P2"})
	require.NoError(t, err)
	assert.Equal(t, "P2", res.ProjectName)
	assert.Empty(t, res.ThemeName)

	_, err = svc.Update(ctx, "   ", &dto.UpdateSessionRequest{})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestActivityServiceStampsSession(t *testing.T) {
	factory := newTestFactory(t)
	activity := NewActivityService(factory, nil, logger.NewNopLogger())
	ctx := context.Background()
	at := testNow.Add(5 * time.Minute)

	err := activity.HandleEvent(ctx, events.NewWorkshopEvent(events.NoteMoved, "s9", "n", "acquis", at))
	require.NoError(t, err)

	res, err := NewSessionService(factory, "http://board.local").Show(ctx, "S9")
	require.NoError(t, err)
	require.NotNil(t, res.LastActivityAt)
	assert.True(t, at.Equal(*res.LastActivityAt))

	// events without a session are acknowledged and ignored
	assert.NoError(t, activity.HandleEvent(ctx, events.BaseEvent{Type: events.NoteMoved, OccurredAt: at}))
}
