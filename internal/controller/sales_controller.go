// FILE: internal/controller/sales_controller.go
package controller

import (
	"offerstack-be/internal/dto"
	"offerstack-be/internal/pkg/serverutils"
	"offerstack-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISalesController interface {
	RegisterRoutes(r fiber.Router)
	CreateBundle(ctx *fiber.Ctx) error
	ListBundles(ctx *fiber.Ctx) error
	ShowBundle(ctx *fiber.Ctx) error
	UpdateBundle(ctx *fiber.Ctx) error
	SaveBundleAs(ctx *fiber.Ctx) error
	DeleteBundle(ctx *fiber.Ctx) error
	Recommend(ctx *fiber.Ctx) error
	CreateUpsellPath(ctx *fiber.Ctx) error
	ListUpsellPaths(ctx *fiber.Ctx) error
	DeactivateUpsellPath(ctx *fiber.Ctx) error
	DeleteUpsellPath(ctx *fiber.Ctx) error
}

type salesController struct {
	service service.ISalesService
}

func NewSalesController(service service.ISalesService) ISalesController {
	return &salesController{service: service}
}

func (c *salesController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/sales", serverutils.AdminMiddleware)

	h.Post("bundles/save-as", c.SaveBundleAs)
	h.Post("bundles", c.CreateBundle)
	h.Get("bundles", c.ListBundles)
	h.Get("bundles/:id", c.ShowBundle)
	h.Put("bundles/:id", c.UpdateBundle)
	h.Delete("bundles/:id", c.DeleteBundle)

	h.Post("ai-recommend", c.Recommend)

	h.Post("upsell-paths", c.CreateUpsellPath)
	h.Get("upsell-paths", c.ListUpsellPaths)
	h.Put("upsell-paths/:id/deactivate", c.DeactivateUpsellPath)
	h.Delete("upsell-paths/:id", c.DeleteUpsellPath)
}

func (c *salesController) CreateBundle(ctx *fiber.Ctx) error {
	var req dto.CreateBundleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateBundle(ctx.Context(), &req, adminIdFromLocals(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create bundle", res))
}

func (c *salesController) ListBundles(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)
	activeOnly := ctx.QueryBool("active", false)

	res, err := c.service.ListBundles(ctx.Context(), page, limit, activeOnly)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get bundles", res))
}

func (c *salesController) ShowBundle(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid bundle id")
	}

	res, err := c.service.GetBundle(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get bundle", res))
}

func (c *salesController) UpdateBundle(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid bundle id")
	}

	var req dto.UpdateBundleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateBundle(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update bundle", res))
}

func (c *salesController) SaveBundleAs(ctx *fiber.Ctx) error {
	var req dto.SaveBundleAsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SaveBundleAs(ctx.Context(), &req, adminIdFromLocals(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fork bundle", res))
}

func (c *salesController) DeleteBundle(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid bundle id")
	}

	if err := c.service.DeleteBundle(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete bundle", nil))
}

func (c *salesController) Recommend(ctx *fiber.Ctx) error {
	var req dto.RecommendRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Recommend(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get recommendations", res))
}

func (c *salesController) CreateUpsellPath(ctx *fiber.Ctx) error {
	var req dto.CreateUpsellPathRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateUpsellPath(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create upsell path", res))
}

func (c *salesController) ListUpsellPaths(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)
	activeOnly := ctx.QueryBool("active", false)

	res, err := c.service.ListUpsellPaths(ctx.Context(), page, limit, activeOnly)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get upsell paths", res))
}

func (c *salesController) DeactivateUpsellPath(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid upsell path id")
	}

	if err := c.service.DeactivateUpsellPath(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success deactivate upsell path", nil))
}

func (c *salesController) DeleteUpsellPath(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid upsell path id")
	}

	if err := c.service.DeleteUpsellPath(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete upsell path", nil))
}
