package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"afom-board-be/internal/board"
	"afom-board-be/internal/dto"
	"afom-board-be/internal/entity"
	"afom-board-be/internal/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(h *Hub, session string, bucket entity.Bucket) *Client {
	return NewClient(h, nil, session, board.Filter{Bucket: bucket})
}

func readFrame(t *testing.T, c *Client) dto.BoardFrame {
	t.Helper()
	select {
	case data := <-c.Send:
		var f dto.BoardFrame
		require.NoError(t, json.Unmarshal(data, &f))
		return f
	case <-time.After(time.Second):
		t.Fatal("no frame received")
	}
	return dto.BoardFrame{}
}

func assertNoFrame(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.Send:
		t.Fatalf("unexpected frame: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func movedChange(session string, n *entity.Note) board.Change {
	return board.Change{SessionId: session, Kind: board.ChangeMoved, Notes: []*entity.Note{n}}
}

func TestDispatchProjectsThroughFilters(t *testing.T) {
	h := NewHub(nil, "", logger.NewNopLogger())
	all := newTestClient(h, "S1", "")
	acquis := newTestClient(h, "S1", entity.BucketAcquis)
	menaces := newTestClient(h, "S1", entity.BucketMenaces)
	faiblesses := newTestClient(h, "S1", entity.BucketFaiblesses)
	other := newTestClient(h, "S2", "")
	for _, c := range []*Client{all, acquis, menaces, faiblesses, other} {
		h.Register(c)
	}

	note := &entity.Note{Id: uuid.New(), SessionId: "S1", Bucket: entity.BucketMenaces, OriginBucket: entity.BucketAcquis}
	change := movedChange("S1", note)
	change.From = board.Departed(note.Id, entity.BucketAcquis)
	h.Dispatch(context.Background(), change)

	f := readFrame(t, all)
	assert.Equal(t, dto.FrameChange, f.Type)
	assert.Equal(t, "moved", f.Kind)
	require.Len(t, f.Upserts, 1)
	assert.Equal(t, note.Id, f.Upserts[0].Id)

	f = readFrame(t, menaces)
	require.Len(t, f.Upserts, 1)

	// the note left this viewer's bucket
	f = readFrame(t, acquis)
	assert.Empty(t, f.Upserts)
	assert.Equal(t, []uuid.UUID{note.Id}, f.RemovedIds)

	assertNoFrame(t, faiblesses)
	assertNoFrame(t, other)
}

func TestUnregisterIsIdempotent(t *testing.T) {
	h := NewHub(nil, "", logger.NewNopLogger())
	c := newTestClient(h, "S1", "")
	h.Register(c)
	assert.Equal(t, 1, h.ClientCount("S1"))

	h.Unregister(c)
	h.Unregister(c)
	assert.Equal(t, 0, h.ClientCount("S1"))

	_, open := <-c.Send
	assert.False(t, open)

	// dispatching to a session without viewers is harmless
	h.Dispatch(context.Background(), movedChange("S1", &entity.Note{Id: uuid.New(), SessionId: "S1", Bucket: entity.BucketAcquis}))
}

func TestSlowClientIsDropped(t *testing.T) {
	h := NewHub(nil, "", logger.NewNopLogger())
	slow := &Client{Hub: h, SessionId: "S1", Send: make(chan []byte, 1)}
	h.Register(slow)

	n := &entity.Note{Id: uuid.New(), SessionId: "S1", Bucket: entity.BucketAcquis}
	h.Dispatch(context.Background(), movedChange("S1", n))
	h.Dispatch(context.Background(), movedChange("S1", n))

	assert.Equal(t, 0, h.ClientCount("S1"))
}

func TestRedisRelayReachesOtherInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	newRedis := func() *redis.Client {
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
		return rdb
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := NewHub(newRedis(), "board_events", logger.NewNopLogger())
	second := NewHub(newRedis(), "board_events", logger.NewNopLogger())
	require.NoError(t, first.Subscribe(ctx))
	require.NoError(t, second.Subscribe(ctx))

	local := newTestClient(first, "S1", "")
	remote := newTestClient(second, "S1", "")
	remoteWeak := newTestClient(second, "S1", entity.BucketFaiblesses)
	first.Register(local)
	second.Register(remote)
	second.Register(remoteWeak)

	note := &entity.Note{Id: uuid.New(), SessionId: "S1", Bucket: entity.BucketAcquis}
	change := movedChange("S1", note)
	change.From = board.Departed(note.Id, entity.BucketFaiblesses)
	first.Dispatch(ctx, change)

	f := readFrame(t, remote)
	require.Len(t, f.Upserts, 1)
	assert.Equal(t, note.Id, f.Upserts[0].Id)

	// the departure survives the relay
	f = readFrame(t, remoteWeak)
	assert.Equal(t, []uuid.UUID{note.Id}, f.RemovedIds)

	// the origin instance already delivered locally and ignores its own echo
	readFrame(t, local)
	assertNoFrame(t, local)
}
