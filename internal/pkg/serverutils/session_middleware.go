package serverutils

import (
	"afom-board-be/internal/board"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const SessionLocalKey = "session_id"

// SessionMiddleware canonicalizes the :session route param and stores it in
// Locals. Sessions are open; holding the token is the only requirement.
func SessionMiddleware(ctx *fiber.Ctx) error {
	token, err := board.NormalizeSessionToken(ctx.Params("session"))
	if err != nil {
		return err
	}
	ctx.Locals(SessionLocalKey, token)
	return ctx.Next()
}

// SessionID reads the token stored by SessionMiddleware.
func SessionID(ctx *fiber.Ctx) string {
	token, _ := ctx.Locals(SessionLocalKey).(string)
	return token
}

// NoteID parses the :id route param.
func NoteID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid note id")
	}
	return id, nil
}
