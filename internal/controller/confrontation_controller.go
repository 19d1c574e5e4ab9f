package controller

import (
	"afom-board-be/internal/dto"
	"afom-board-be/internal/pkg/serverutils"
	"afom-board-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConfrontationController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	Save(ctx *fiber.Ctx) error
	AutoFill(ctx *fiber.Ctx) error
}

type confrontationController struct {
	confrontationService service.IConfrontationService
}

func NewConfrontationController(confrontationService service.IConfrontationService) IConfrontationController {
	return &confrontationController{
		confrontationService: confrontationService,
	}
}

func (c *confrontationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/confrontation/v1/:session", serverutils.SessionMiddleware)
	h.Get("", c.Get)
	h.Put("", c.Save)
	h.Post("/autofill", c.AutoFill)
}

func (c *confrontationController) Get(ctx *fiber.Ctx) error {
	res, err := c.confrontationService.Get(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show confrontation", res))
}

func (c *confrontationController) Save(ctx *fiber.Ctx) error {
	var req dto.SaveConfrontationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.confrontationService.Save(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save confrontation", res))
}

func (c *confrontationController) AutoFill(ctx *fiber.Ctx) error {
	var req dto.AutoFillRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.confrontationService.AutoFill(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success autofill confrontation", res))
}
