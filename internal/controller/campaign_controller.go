// FILE: internal/controller/campaign_controller.go
package controller

import (
	"offerstack-be/internal/dto"
	"offerstack-be/internal/pkg/serverutils"
	"offerstack-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICampaignController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	AddCriteria(ctx *fiber.Ctx) error
	Enroll(ctx *fiber.Ctx) error
	ListEnrollments(ctx *fiber.Ctx) error
	ShowEnrollment(ctx *fiber.Ctx) error
	VerifyProgress(ctx *fiber.Ctx) error
	Track(ctx *fiber.Ctx) error
	Resolve(ctx *fiber.Ctx) error
	Withdraw(ctx *fiber.Ctx) error
}

type campaignController struct {
	service service.ICampaignService
}

func NewCampaignController(service service.ICampaignService) ICampaignController {
	return &campaignController{service: service}
}

func (c *campaignController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/campaigns", serverutils.AdminMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Post(":id/criteria", c.AddCriteria)
	h.Post(":id/enroll", c.Enroll)
	h.Get(":id/enrollments", c.ListEnrollments)
	h.Get(":id/enrollments/:enrollmentId", c.ShowEnrollment)
	h.Put(":id/enrollments/:enrollmentId/progress/:criterionId", c.VerifyProgress)
	h.Post(":id/enrollments/:enrollmentId/resolve", c.Resolve)
	h.Post(":id/enrollments/:enrollmentId/withdraw", c.Withdraw)

	// Ingress for automated tracking signals (video platforms, workflow
	// engine callbacks). No admin identity; tracked rows stay unverified.
	r.Post("/campaigns/track", c.Track)
}

func (c *campaignController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateCampaign(ctx.Context(), &req, adminIdFromLocals(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create campaign", res))
}

func (c *campaignController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid campaign id")
	}

	var req dto.UpdateCampaignRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateCampaign(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update campaign", res))
}

func (c *campaignController) List(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)
	status := ctx.Query("status")

	res, err := c.service.GetCampaigns(ctx.Context(), page, limit, status)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get campaigns", res))
}

func (c *campaignController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid campaign id")
	}

	campaign, criteria, err := c.service.GetCampaign(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get campaign", fiber.Map{
		"campaign":           campaign,
		"criteria_templates": criteria,
	}))
}

func (c *campaignController) AddCriteria(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid campaign id")
	}

	var req dto.CreateCriteriaTemplateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AddCriteriaTemplate(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add criteria template", res))
}

func (c *campaignController) Enroll(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid campaign id")
	}

	var req dto.EnrollClientRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Enroll(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success enroll client", res))
}

func (c *campaignController) ListEnrollments(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid campaign id")
	}

	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)
	status := ctx.Query("status")

	res, err := c.service.GetEnrollments(ctx.Context(), id, page, limit, status)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get enrollments", res))
}

func (c *campaignController) ShowEnrollment(ctx *fiber.Ctx) error {
	enrollmentId, err := uuid.Parse(ctx.Params("enrollmentId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid enrollment id")
	}

	res, err := c.service.GetEnrollment(ctx.Context(), enrollmentId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get enrollment", res))
}

func (c *campaignController) VerifyProgress(ctx *fiber.Ctx) error {
	enrollmentId, err := uuid.Parse(ctx.Params("enrollmentId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid enrollment id")
	}
	criterionId, err := uuid.Parse(ctx.Params("criterionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid criterion id")
	}

	var req dto.VerifyProgressRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.VerifyProgress(ctx.Context(), enrollmentId, criterionId, &req, adminIdFromLocals(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success verify progress", res))
}

func (c *campaignController) Track(ctx *fiber.Ctx) error {
	var req dto.TrackProgressRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.TrackProgress(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success track progress", nil))
}

func (c *campaignController) Resolve(ctx *fiber.Ctx) error {
	enrollmentId, err := uuid.Parse(ctx.Params("enrollmentId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid enrollment id")
	}

	var req dto.ResolveEnrollmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.Resolve(ctx.Context(), enrollmentId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success resolve enrollment", res))
}

func (c *campaignController) Withdraw(ctx *fiber.Ctx) error {
	enrollmentId, err := uuid.Parse(ctx.Params("enrollmentId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid enrollment id")
	}

	var req dto.ResolveEnrollmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		// Notes are optional on withdrawal.
		req = dto.ResolveEnrollmentRequest{}
	}

	if err := c.service.Withdraw(ctx.Context(), enrollmentId, req.ResolutionNotes); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success withdraw enrollment", nil))
}
