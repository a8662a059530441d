// FILE: internal/controller/continuity_controller.go
package controller

import (
	"offerstack-be/internal/dto"
	"offerstack-be/internal/pkg/serverutils"
	"offerstack-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IContinuityController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Deactivate(ctx *fiber.Ctx) error
	ListSubscriptions(ctx *fiber.Ctx) error
}

type continuityController struct {
	service service.IContinuityService
}

func NewContinuityController(service service.IContinuityService) IContinuityController {
	return &continuityController{service: service}
}

func (c *continuityController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/continuity-plans", serverutils.AdminMiddleware)
	// Literal segment before the :id wildcard.
	h.Get("subscriptions", c.ListSubscriptions)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Deactivate)
}

func (c *continuityController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateContinuityPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreatePlan(ctx.Context(), &req, adminIdFromLocals(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create continuity plan", res))
}

func (c *continuityController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid plan id")
	}

	var req dto.UpdateContinuityPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdatePlan(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update continuity plan", res))
}

func (c *continuityController) List(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)
	activeOnly := ctx.QueryBool("active", false)

	res, err := c.service.GetPlans(ctx.Context(), page, limit, activeOnly)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get continuity plans", res))
}

func (c *continuityController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid plan id")
	}

	res, err := c.service.GetPlan(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get continuity plan", res))
}

func (c *continuityController) Deactivate(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid plan id")
	}

	if err := c.service.DeactivatePlan(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success deactivate continuity plan", nil))
}

func (c *continuityController) ListSubscriptions(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)
	status := ctx.Query("status")
	clientEmail := ctx.Query("client_email")

	res, err := c.service.GetSubscriptions(ctx.Context(), page, limit, status, clientEmail)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get subscriptions", res))
}
