package handler

import (
	"encoding/json"

	"afom-board-be/internal/board"
	"afom-board-be/internal/dto"
	"afom-board-be/internal/pkg/logger"
	"afom-board-be/internal/pkg/serverutils"
	"afom-board-be/internal/service"
	internalWS "afom-board-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const liveModule = "BoardLiveHandler"

type BoardLiveHandler struct {
	boardService service.IBoardService
	hub          *internalWS.Hub
	logger       logger.ILogger
}

func NewBoardLiveHandler(boardService service.IBoardService, hub *internalWS.Hub, log logger.ILogger) *BoardLiveHandler {
	return &BoardLiveHandler{
		boardService: boardService,
		hub:          hub,
		logger:       log,
	}
}

func (h *BoardLiveHandler) RegisterRoutes(r fiber.Router) {
	h.registerRoutes(r.Group("/board/v1"))
}

func (h *BoardLiveHandler) registerRoutes(r fiber.Router) {
	r.Get("/:session/ws", serverutils.SessionMiddleware, h.ServeWs)
}

// ServeWs upgrades to a live view of one session, optionally narrowed to one
// bucket with ?bucket=.
func (h *BoardLiveHandler) ServeWs(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	sessionId := serverutils.SessionID(ctx)
	var filter board.Filter
	if raw := ctx.Query("bucket"); raw != "" {
		bucket, err := board.ParseBucket(raw)
		if err != nil {
			return err
		}
		filter.Bucket = bucket
	}

	reqCtx := ctx.UserContext()
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info(liveModule, "Starting live session", map[string]interface{}{
			"session_id": sessionId,
			"bucket":     filter.Bucket.String(),
		})
		internalWS.ServeWs(h.hub, conn, sessionId, filter, func() ([]byte, error) {
			notes, err := h.boardService.Snapshot(reqCtx, sessionId, filter)
			if err != nil {
				return nil, err
			}
			return json.Marshal(dto.NewSnapshotFrame(filter, notes))
		})
		h.logger.Info(liveModule, "Live session ended", map[string]interface{}{"session_id": sessionId})
	})(ctx)
}
