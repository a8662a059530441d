// FILE: internal/controller/guarantee_controller.go
package controller

import (
	"offerstack-be/internal/dto"
	"offerstack-be/internal/pkg/serverutils"
	"offerstack-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IGuaranteeController interface {
	RegisterRoutes(r fiber.Router)
	CreateTemplate(ctx *fiber.Ctx) error
	GetTemplates(ctx *fiber.Ctx) error
	DeactivateTemplate(ctx *fiber.Ctx) error
	CreateInstance(ctx *fiber.Ctx) error
	GetInstances(ctx *fiber.Ctx) error
	GetInstance(ctx *fiber.Ctx) error
	VerifyMilestone(ctx *fiber.Ctx) error
	Evaluate(ctx *fiber.Ctx) error
	SubmitEvidence(ctx *fiber.Ctx) error
	ChoosePayout(ctx *fiber.Ctx) error
}

type guaranteeController struct {
	service service.IGuaranteeService
}

func NewGuaranteeController(service service.IGuaranteeService) IGuaranteeController {
	return &guaranteeController{service: service}
}

func (c *guaranteeController) RegisterRoutes(r fiber.Router) {
	templates := r.Group("/admin/guarantee-templates", serverutils.AdminMiddleware)
	templates.Post("", c.CreateTemplate)
	templates.Get("", c.GetTemplates)
	templates.Delete(":id", c.DeactivateTemplate)

	admin := r.Group("/admin/guarantees", serverutils.AdminMiddleware)
	admin.Post("", c.CreateInstance)
	admin.Get("", c.GetInstances)
	admin.Get(":id", c.GetInstance)
	admin.Put(":id/milestones/:milestoneId", c.VerifyMilestone)
	admin.Post(":id/evaluate", c.Evaluate)

	// Client-facing: identity comes from the email in the body, not a token.
	public := r.Group("/guarantees")
	public.Post(":id/evidence", c.SubmitEvidence)
	public.Post(":id/choose-payout", c.ChoosePayout)
}

func (c *guaranteeController) CreateTemplate(ctx *fiber.Ctx) error {
	var req dto.CreateGuaranteeTemplateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateTemplate(ctx.Context(), &req, adminIdFromLocals(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create guarantee template", res))
}

func (c *guaranteeController) GetTemplates(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)
	activeOnly := ctx.QueryBool("active", false)

	res, err := c.service.GetTemplates(ctx.Context(), page, limit, activeOnly)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get guarantee templates", res))
}

func (c *guaranteeController) DeactivateTemplate(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid template id")
	}

	if err := c.service.DeactivateTemplate(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success deactivate guarantee template", nil))
}

func (c *guaranteeController) CreateInstance(ctx *fiber.Ctx) error {
	var req dto.CreateGuaranteeInstanceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateInstance(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create guarantee", res))
}

func (c *guaranteeController) GetInstances(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)
	status := ctx.Query("status")
	clientEmail := ctx.Query("client_email")

	res, err := c.service.GetInstances(ctx.Context(), page, limit, status, clientEmail)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get guarantees", res))
}

func (c *guaranteeController) GetInstance(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid guarantee id")
	}

	res, err := c.service.GetInstance(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get guarantee", res))
}

func (c *guaranteeController) VerifyMilestone(ctx *fiber.Ctx) error {
	instanceId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid guarantee id")
	}
	milestoneId, err := uuid.Parse(ctx.Params("milestoneId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid milestone id")
	}

	var req dto.VerifyMilestoneRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.VerifyMilestone(ctx.Context(), instanceId, milestoneId, &req, adminIdFromLocals(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success verify milestone", res))
}

func (c *guaranteeController) Evaluate(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid guarantee id")
	}

	res, err := c.service.Evaluate(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success evaluate guarantee", res))
}

func (c *guaranteeController) SubmitEvidence(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid guarantee id")
	}

	var req dto.SubmitEvidenceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SubmitEvidence(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success submit evidence", res))
}

func (c *guaranteeController) ChoosePayout(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid guarantee id")
	}

	var req dto.ChoosePayoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ChoosePayout(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success choose payout", res))
}
