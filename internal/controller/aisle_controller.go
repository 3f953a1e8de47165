package controller

import (
	"item-finder-be/internal/dto"
	"item-finder-be/internal/entity"
	"item-finder-be/internal/pkg/serverutils"
	"item-finder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAisleController interface {
	RegisterRoutes(r fiber.Router)
	Match(ctx *fiber.Ctx) error
	MatchStored(ctx *fiber.Ctx) error
}

type aisleController struct {
	matcherService service.IMatcherService
}

func NewAisleController(matcherService service.IMatcherService) IAisleController {
	return &aisleController{
		matcherService: matcherService,
	}
}

func (c *aisleController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/aisle/v1")
	h.Post("match", c.Match)
	h.Get("match-items/:sessionId", c.MatchStored)
}

func (c *aisleController) Match(ctx *fiber.Ctx) error {
	var req dto.MatchAislesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	candidates := make([]entity.ProductCandidate, 0, len(req.Items))
	for _, item := range req.Items {
		candidates = append(candidates, entity.ProductCandidate{
			Category:    item.Category,
			Name:        item.Name,
			SourceImage: item.ImageName,
		})
	}

	results, err := c.matcherService.MatchAisles(ctx.Context(), candidates)
	if err != nil {
		return err
	}

	res := dto.MatchAislesResponse{
		Processed: len(results),
		Results:   make([]dto.MatchedItem, 0, len(results)),
	}
	for _, r := range results {
		res.Results = append(res.Results, dto.MatchedItem{
			Category:  r.Candidate.Category,
			Name:      r.Candidate.Name,
			ImageName: r.Candidate.SourceImage,
			Aisle:     r.Aisle,
			Matched:   r.Matched,
		})
	}

	return ctx.JSON(serverutils.SuccessResponse("Success match aisles", res))
}

func (c *aisleController) MatchStored(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")

	results, err := c.matcherService.MatchStored(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	res := dto.MatchStoredResponse{
		Results: make([]dto.StoredMatchItem, 0, len(results)),
	}
	for _, r := range results {
		if r.Matched {
			res.MatchedCount++
		}
		res.Results = append(res.Results, dto.StoredMatchItem{
			AnalyzedCategory: r.Candidate.Category,
			AnalyzedName:     r.Candidate.Name,
			Aisle:            r.Aisle,
			ImageName:        r.Candidate.SourceImage,
			Matched:          r.Matched,
		})
	}

	return ctx.JSON(serverutils.SuccessResponse("Success match stored results", res))
}
