package controller

import (
	"fmt"

	"afom-board-be/internal/pkg/serverutils"
	"afom-board-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnalysisController interface {
	RegisterRoutes(r fiber.Router)
	Summary(ctx *fiber.Ctx) error
	CentralProblem(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
}

type analysisController struct {
	analysisService service.IAnalysisService
	exportService   service.IExportService
}

func NewAnalysisController(analysisService service.IAnalysisService, exportService service.IExportService) IAnalysisController {
	return &analysisController{
		analysisService: analysisService,
		exportService:   exportService,
	}
}

func (c *analysisController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analysis/v1/:session", serverutils.SessionMiddleware)
	h.Post("/summary", c.Summary)
	h.Post("/central-problem", c.CentralProblem)
	h.Get("/export", c.Export)
}

func (c *analysisController) Summary(ctx *fiber.Ctx) error {
	res, err := c.analysisService.Summarize(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success summarize board", res))
}

func (c *analysisController) CentralProblem(ctx *fiber.Ctx) error {
	res, err := c.analysisService.CentralProblem(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success identify central problem", res))
}

func (c *analysisController) Export(ctx *fiber.Ctx) error {
	file, err := c.exportService.Export(ctx.UserContext(), serverutils.SessionID(ctx), ctx.Query("format", "csv"))
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, file.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.FileName))
	return ctx.Send(file.Body)
}
