package websocket

import (
	"time"

	"afom-board-be/internal/board"

	"github.com/gofiber/websocket/v2"
)

// SnapshotFunc renders the initial frame for a new viewer.
type SnapshotFunc func() ([]byte, error)

// ServeWs registers the viewer before the snapshot is read, so no committed
// change can fall between the two. Changes queued meanwhile are sent after the
// snapshot and re-apply idempotently.
func ServeWs(hub *Hub, conn *websocket.Conn, sessionId string, filter board.Filter, snapshot SnapshotFunc) {
	client := NewClient(hub, conn, sessionId, filter)
	hub.Register(client)

	data, err := snapshot()
	if err != nil {
		hub.logger.Error("Client", "Failed to build snapshot", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		hub.Unregister(client)
		conn.Close()
		return
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		hub.Unregister(client)
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
