package controller

import (
	"io"

	"item-finder-be/internal/pkg/serverutils"
	"item-finder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnalysisController interface {
	RegisterRoutes(r fiber.Router)
	Analyze(ctx *fiber.Ctx) error
	Results(ctx *fiber.Ctx) error
}

type analysisController struct {
	analysisService service.IAnalysisService
}

func NewAnalysisController(analysisService service.IAnalysisService) IAnalysisController {
	return &analysisController{
		analysisService: analysisService,
	}
}

func (c *analysisController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analysis/v1")
	h.Post("analyze", c.Analyze)
	h.Get("results/:sessionId", c.Results)
}

func (c *analysisController) Analyze(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return serverutils.NewClientInputError("Expected multipart form data")
	}

	files := form.File["images"]
	images := make([]service.UploadedImage, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return serverutils.NewClientInputError("Could not read uploaded file " + fh.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return serverutils.NewClientInputError("Could not read uploaded file " + fh.Filename)
		}
		images = append(images, service.UploadedImage{
			Name:     fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Data:     data,
		})
	}

	res, err := c.analysisService.AnalyzeImages(ctx.Context(), images)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *analysisController) Results(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")

	res, err := c.analysisService.Results(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show analysis results", res))
}
