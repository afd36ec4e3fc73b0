package controller

import (
	"notebookrag/internal/pkg/serverutils"
	"notebookrag/internal/service"
	"notebookrag/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

type IFileController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Process(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type fileController struct {
	service service.IDocumentService
}

func NewFileController(service service.IDocumentService) IFileController {
	return &fileController{service: service}
}

func (c *fileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notebook/v1/:id/files")
	h.Get("", c.List)
	h.Post("", c.Upload)
	h.Post("/process", c.Process)
}

func (c *fileController) Upload(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return apperror.Validation("invalid multipart form: %v", err)
	}

	files := form.File["files"]
	res, err := c.service.Upload(ctx.Context(), id, files)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload files", res))
}

func (c *fileController) Process(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ProcessFiles(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process files", res))
}

func (c *fileController) List(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListFiles(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list files", res))
}
