// FILE: internal/controller/catalog_controller.go
package controller

import (
	"offerstack-be/internal/dto"
	"offerstack-be/internal/pkg/serverutils"
	"offerstack-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	ListContent(ctx *fiber.Ctx) error
	UpsertContentRole(ctx *fiber.Ctx) error
}

type catalogController struct {
	service service.ICatalogService
}

func NewCatalogController(service service.ICatalogService) ICatalogController {
	return &catalogController{service: service}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/sales", serverutils.AdminMiddleware)

	h.Get("products", c.ListContent)
	h.Post("products", c.UpsertContentRole)
}

func (c *catalogController) ListContent(ctx *fiber.Ctx) error {
	contentType := ctx.Query("content_type")
	role := ctx.Query("role")
	// Inactive rows stay hidden unless the admin asks for them.
	activeOnly := ctx.QueryBool("active", true)

	res, err := c.service.GetContent(ctx.Context(), contentType, role, activeOnly)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get content", res))
}

func (c *catalogController) UpsertContentRole(ctx *fiber.Ctx) error {
	var req dto.UpsertContentRoleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpsertContentRole(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success classify content", res))
}
