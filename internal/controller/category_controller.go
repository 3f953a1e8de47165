package controller

import (
	"item-finder-be/internal/dto"
	"item-finder-be/internal/pkg/serverutils"
	"item-finder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICategoryController interface {
	RegisterRoutes(r fiber.Router)
	Add(ctx *fiber.Ctx) error
	UpdateAisle(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type categoryController struct {
	categoryService service.ICategoryService
}

func NewCategoryController(categoryService service.ICategoryService) ICategoryController {
	return &categoryController{
		categoryService: categoryService,
	}
}

func (c *categoryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/category/v1")
	h.Post("", c.Add)
	h.Put("aisle", c.UpdateAisle)
	h.Get("", c.List)
	h.Get(":id", c.Show)
}

func (c *categoryController) Add(ctx *fiber.Ctx) error {
	var req dto.AddCategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.categoryService.Add(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add category", res))
}

func (c *categoryController) UpdateAisle(ctx *fiber.Ctx) error {
	var req dto.UpdateAisleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.categoryService.UpdateAisle(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update aisle", res))
}

func (c *categoryController) Show(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	res, err := c.categoryService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show category", res))
}

func (c *categoryController) List(ctx *fiber.Ctx) error {
	q := dto.ListCategoriesQuery{
		Limit:       ctx.QueryInt("limit", 0),
		NewestFirst: ctx.Query("order") == "desc",
	}

	res, err := c.categoryService.List(ctx.Context(), q)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list categories", res))
}
