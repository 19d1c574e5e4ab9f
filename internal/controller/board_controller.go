package controller

import (
	"afom-board-be/internal/dto"
	"afom-board-be/internal/pkg/serverutils"
	"afom-board-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBoardController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Counts(ctx *fiber.Ctx) error
	Move(ctx *fiber.Ctx) error
	Nudge(ctx *fiber.Ctx) error
	Archive(ctx *fiber.Ctx) error
	Restore(ctx *fiber.Ctx) error
	Edit(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type boardController struct {
	boardService service.IBoardService
}

func NewBoardController(boardService service.IBoardService) IBoardController {
	return &boardController{
		boardService: boardService,
	}
}

func (c *boardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/board/v1/:session", serverutils.SessionMiddleware)
	h.Get("/counts", c.Counts)
	h.Get("/notes", c.List)
	h.Post("/notes", c.Submit)
	h.Put("/notes/:id/move", c.Move)
	h.Put("/notes/:id/nudge", c.Nudge)
	h.Put("/notes/:id/archive", c.Archive)
	h.Put("/notes/:id/restore", c.Restore)
	h.Put("/notes/:id", c.Edit)
	h.Delete("/notes/:id", c.Delete)
}

func (c *boardController) Submit(ctx *fiber.Ctx) error {
	var req dto.SubmitNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.boardService.Submit(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success submit note", res))
}

func (c *boardController) List(ctx *fiber.Ctx) error {
	res, err := c.boardService.List(ctx.UserContext(), serverutils.SessionID(ctx), ctx.Query("bucket"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notes", res))
}

func (c *boardController) Counts(ctx *fiber.Ctx) error {
	res, err := c.boardService.Counts(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success count notes", res))
}

func (c *boardController) Move(ctx *fiber.Ctx) error {
	id, err := serverutils.NoteID(ctx)
	if err != nil {
		return err
	}

	var req dto.MoveNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.boardService.MoveTo(ctx.UserContext(), serverutils.SessionID(ctx), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success move note", res))
}

func (c *boardController) Nudge(ctx *fiber.Ctx) error {
	id, err := serverutils.NoteID(ctx)
	if err != nil {
		return err
	}

	var req dto.NudgeNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.boardService.MoveRelative(ctx.UserContext(), serverutils.SessionID(ctx), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success nudge note", res))
}

func (c *boardController) Archive(ctx *fiber.Ctx) error {
	id, err := serverutils.NoteID(ctx)
	if err != nil {
		return err
	}

	res, err := c.boardService.Archive(ctx.UserContext(), serverutils.SessionID(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success archive note", res))
}

func (c *boardController) Restore(ctx *fiber.Ctx) error {
	id, err := serverutils.NoteID(ctx)
	if err != nil {
		return err
	}

	var req dto.RestoreNoteRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	res, err := c.boardService.Restore(ctx.UserContext(), serverutils.SessionID(ctx), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success restore note", res))
}

func (c *boardController) Edit(ctx *fiber.Ctx) error {
	id, err := serverutils.NoteID(ctx)
	if err != nil {
		return err
	}

	var req dto.EditNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.boardService.Edit(ctx.UserContext(), serverutils.SessionID(ctx), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success edit note", res))
}

func (c *boardController) Delete(ctx *fiber.Ctx) error {
	id, err := serverutils.NoteID(ctx)
	if err != nil {
		return err
	}

	confirmed := ctx.QueryBool("confirm", false)
	if err := c.boardService.Delete(ctx.UserContext(), serverutils.SessionID(ctx), id, confirmed); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete note", nil))
}
