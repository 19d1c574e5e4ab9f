package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"afom-board-be/internal/board"
	"afom-board-be/internal/dto"
	"afom-board-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const hubModule = "Hub"

// Hub keeps the live viewers of every session on this instance. Changes are
// delivered locally and relayed through Redis so viewers connected to other
// instances see them too.
type Hub struct {
	// session token -> connected clients
	sessions map[string]map[*Client]struct{}
	mu       sync.RWMutex

	// Redis connection for cross-instance fan-out, nil when running alone
	rdb     *redis.Client
	channel string
	origin  string

	logger logger.ILogger
}

type relayEnvelope struct {
	Origin string                 `json:"origin"`
	Change dto.BoardChangeMessage `json:"change"`
}

func NewHub(rdb *redis.Client, channel string, log logger.ILogger) *Hub {
	if channel == "" {
		channel = "board_events"
	}
	return &Hub{
		sessions: make(map[string]map[*Client]struct{}),
		rdb:      rdb,
		channel:  channel,
		origin:   uuid.NewString(),
		logger:   log,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	clients, ok := h.sessions[c.SessionId]
	if !ok {
		clients = make(map[*Client]struct{})
		h.sessions[c.SessionId] = clients
	}
	clients[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Info(hubModule, "Client registered", map[string]interface{}{
		"session_id": c.SessionId,
		"bucket":     c.Filter.Bucket.String(),
	})
}

// Unregister removes the client and closes its Send channel. Calling it more
// than once is safe.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	clients, ok := h.sessions[c.SessionId]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	close(c.Send)
	if len(clients) == 0 {
		delete(h.sessions, c.SessionId)
		h.logger.Info(hubModule, "Session has no more viewers", map[string]interface{}{"session_id": c.SessionId})
	}
}

// ClientCount reports how many viewers are watching a session here.
func (h *Hub) ClientCount(sessionId string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionId])
}

// Dispatch implements service.BoardDelivery.
func (h *Hub) Dispatch(ctx context.Context, change board.Change) {
	h.deliver(change)

	if h.rdb == nil {
		return
	}
	payload, err := json.Marshal(relayEnvelope{Origin: h.origin, Change: dto.NewBoardChangeMessage(change)})
	if err != nil {
		h.logger.Error(hubModule, "Failed to encode relay payload", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := h.rdb.Publish(ctx, h.channel, payload).Err(); err != nil {
		h.logger.Warn(hubModule, "Redis publish failed", map[string]interface{}{
			"session_id": change.SessionId,
			"error":      err.Error(),
		})
	}
}

// deliver pushes a change to local viewers of its session, each through its
// own filter. Viewers whose buffer is full are dropped.
func (h *Hub) deliver(change board.Change) {
	var slow []*Client

	h.mu.RLock()
	for c := range h.sessions[change.SessionId] {
		p := board.Project(c.Filter, change)
		if p.Empty() {
			continue
		}
		data, err := json.Marshal(dto.NewChangeFrame(change.Kind, p))
		if err != nil {
			continue
		}
		select {
		case c.Send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	if len(slow) == 0 {
		return
	}
	h.mu.Lock()
	for _, c := range slow {
		h.logger.Warn(hubModule, "Client send buffer full, dropping client", map[string]interface{}{"session_id": c.SessionId})
		h.removeLocked(c)
	}
	h.mu.Unlock()
}

// Subscribe starts relaying changes published by other instances. It returns
// once the Redis subscription is confirmed.
func (h *Hub) Subscribe(ctx context.Context) error {
	if h.rdb == nil {
		return nil
	}

	pubsub := h.rdb.Subscribe(ctx, h.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return err
	}

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				h.handleRelay(msg.Payload)
			}
		}
	}()
	return nil
}

func (h *Hub) handleRelay(raw string) {
	var env relayEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		h.logger.Warn(hubModule, "Redis message parse error", map[string]interface{}{"error": err.Error()})
		return
	}
	if env.Origin == h.origin {
		return
	}
	h.deliver(env.Change.ToChange())
}
