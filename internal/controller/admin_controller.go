package controller

import (
	"tg-assist-be/internal/dto"
	"tg-assist-be/internal/pkg/serverutils"
	"tg-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetLogs(ctx *fiber.Ctx) error
	GetFiles(ctx *fiber.Ctx) error
	GetAudit(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
}

func NewAdminController(service service.IAdminService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/logs", c.GetLogs)
	h.Get("/files", c.GetFiles)
	h.Get("/audit", c.GetAudit)
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	var q dto.PaginationQuery
	if err := ctx.QueryParser(&q); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(q); err != nil {
		return err
	}
	q.Normalize()

	logs, err := c.service.GetLogs(ctx.Query("level"), q.Limit, q.Offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get logs", logs))
}

func (c *adminController) GetFiles(ctx *fiber.Ctx) error {
	var q dto.PaginationQuery
	if err := ctx.QueryParser(&q); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(q); err != nil {
		return err
	}
	q.Normalize()

	res, err := c.service.GetStoredFiles(ctx.Context(), q.Limit, q.Offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get stored files", res))
}

func (c *adminController) GetAudit(ctx *fiber.Ctx) error {
	var q dto.PaginationQuery
	if err := ctx.QueryParser(&q); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(q); err != nil {
		return err
	}
	q.Normalize()

	res, err := c.service.GetAuditTrail(ctx.Context(), q.Limit, q.Offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get audit trail", res))
}
