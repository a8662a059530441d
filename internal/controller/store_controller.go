// FILE: internal/controller/store_controller.go
package controller

import (
	"offerstack-be/internal/dto"
	"offerstack-be/internal/pkg/serverutils"
	"offerstack-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IStoreController interface {
	RegisterRoutes(r fiber.Router)
	GetProducts(ctx *fiber.Ctx) error
	GetServices(ctx *fiber.Ctx) error
	GetServiceBundles(ctx *fiber.Ctx) error
	ValidateDiscount(ctx *fiber.Ctx) error
}

type storeController struct {
	service service.IStoreService
}

func NewStoreController(service service.IStoreService) IStoreController {
	return &storeController{service: service}
}

// All routes here are public storefront reads.
func (c *storeController) RegisterRoutes(r fiber.Router) {
	r.Get("/products", c.GetProducts)
	r.Get("/services", c.GetServices)
	r.Get("/services/:id/bundles", c.GetServiceBundles)
	r.Post("/discount-codes/validate", c.ValidateDiscount)
}

func (c *storeController) GetProducts(ctx *fiber.Ctx) error {
	res, err := c.service.GetProducts(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get products", res))
}

func (c *storeController) GetServices(ctx *fiber.Ctx) error {
	res, err := c.service.GetServices(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get services", res))
}

func (c *storeController) GetServiceBundles(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid service id")
	}

	res, err := c.service.GetBundlesByService(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get service bundles", res))
}

func (c *storeController) ValidateDiscount(ctx *fiber.Ctx) error {
	var req dto.ValidateDiscountRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ValidateDiscount(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success validate discount code", res))
}
