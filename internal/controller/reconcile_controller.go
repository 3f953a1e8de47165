package controller

import (
	"item-finder-be/internal/dto"
	"item-finder-be/internal/pkg/serverutils"
	"item-finder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReconcileController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	BeginEdit(ctx *fiber.Ctx) error
	SetProposedAisle(ctx *fiber.Ctx) error
	Confirm(ctx *fiber.Ctx) error
}

type reconcileController struct {
	sessionService service.ISessionService
}

func NewReconcileController(sessionService service.ISessionService) IReconcileController {
	return &reconcileController{
		sessionService: sessionService,
	}
}

func (c *reconcileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/reconcile/v1")
	h.Post("sessions", c.Create)
	h.Get("sessions/:id", c.Show)
	h.Post("sessions/:id/items/:itemId/edit", c.BeginEdit)
	h.Put("sessions/:id/items/:itemId/aisle", c.SetProposedAisle)
	h.Post("sessions/:id/items/:itemId/confirm", c.Confirm)
}

func (c *reconcileController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.sessionService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create reconciliation session", res))
}

func (c *reconcileController) Show(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	res, err := c.sessionService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show reconciliation session", res))
}

func (c *reconcileController) BeginEdit(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	itemID := ctx.Params("itemId")

	err := c.sessionService.BeginEdit(ctx.Context(), id, itemID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success begin edit", nil))
}

func (c *reconcileController) SetProposedAisle(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	itemID := ctx.Params("itemId")

	var req dto.SetProposedAisleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := c.sessionService.SetProposedAisle(ctx.Context(), id, itemID, req.Aisle)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success set proposed aisle", nil))
}

func (c *reconcileController) Confirm(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	itemID := ctx.Params("itemId")

	res, err := c.sessionService.Confirm(ctx.Context(), id, itemID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success confirm item", res))
}
