package service

import (
	"context"
	"fmt"
	"time"

	"item-finder-be/internal/dto"
	"item-finder-be/internal/entity"
	"item-finder-be/internal/pkg/logger"
	"item-finder-be/internal/pkg/serverutils"
	"item-finder-be/internal/repository/memory"
	"item-finder-be/pkg/events"
	"item-finder-be/pkg/store"
	"item-finder-be/pkg/vision"
)

// UploadedImage is one image file of an analyze batch.
type UploadedImage struct {
	Name     string
	MimeType string
	Data     []byte
}

type IAnalysisService interface {
	AnalyzeImages(ctx context.Context, images []UploadedImage) (*dto.AnalyzeResponse, error)
	Results(ctx context.Context, sessionID string) (*dto.AnalysisResultsResponse, error)
}

type analysisService struct {
	provider          vision.Provider
	sessionRepo       *memory.SessionRepository
	publisherService  IPublisherService
	extractionTimeout time.Duration
	log               logger.ILogger
}

func NewAnalysisService(
	provider vision.Provider,
	sessionRepo *memory.SessionRepository,
	publisherService IPublisherService,
	extractionTimeout time.Duration,
	log logger.ILogger,
) IAnalysisService {
	return &analysisService{
		provider:          provider,
		sessionRepo:       sessionRepo,
		publisherService:  publisherService,
		extractionTimeout: extractionTimeout,
		log:               log,
	}
}

// AnalyzeImages extracts product candidates from each image in order. A
// failed or timed-out extraction contributes exactly one error placeholder
// candidate; one bad image never aborts the rest of the batch. The flattened
// results are kept in a fresh analysis session.
func (s *analysisService) AnalyzeImages(ctx context.Context, images []UploadedImage) (*dto.AnalyzeResponse, error) {
	if len(images) == 0 {
		return nil, serverutils.NewClientInputError("No images uploaded")
	}

	allResults := make([]entity.ProductCandidate, 0, len(images))
	for _, img := range images {
		candidates := s.extractOne(ctx, img)
		allResults = append(allResults, candidates...)
	}

	session := store.NewAnalysisSession(allResults)
	s.sessionRepo.SaveAnalysis(session)

	if s.publisherService != nil {
		evt := events.BaseEvent{
			Type: events.TypeAnalysisCompleted,
			Data: map[string]interface{}{
				"session_id": session.ID,
				"images":     len(images),
				"products":   len(allResults),
			},
			OccurredAt: time.Now(),
		}
		if err := s.publisherService.Publish(ctx, evt); err != nil {
			s.log.Warn("analysis", "Failed to publish ANALYSIS_COMPLETED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.AnalyzeResponse{
		SessionId: session.ID,
		Message:   fmt.Sprintf("Analysis complete. Processed %d products.", len(allResults)),
		Count:     len(allResults),
		Results:   candidatesToDTO(allResults),
	}, nil
}

func (s *analysisService) extractOne(ctx context.Context, img UploadedImage) []entity.ProductCandidate {
	callCtx, cancel := context.WithTimeout(ctx, s.extractionTimeout)
	defer cancel()

	candidates, err := s.provider.ExtractProducts(callCtx, img.Data, img.MimeType)
	if err != nil {
		s.log.Warn("analysis", "Extraction failed for image", map[string]interface{}{
			"image": img.Name,
			"error": err.Error(),
		})
		return []entity.ProductCandidate{{
			Category:    "Error",
			Name:        fmt.Sprintf("Failed to process %s", img.Name),
			SourceImage: img.Name,
		}}
	}

	for i := range candidates {
		candidates[i].SourceImage = img.Name
	}
	return candidates
}

func (s *analysisService) Results(ctx context.Context, sessionID string) (*dto.AnalysisResultsResponse, error) {
	session, found := s.sessionRepo.GetAnalysis(sessionID)
	if !found {
		return nil, serverutils.NewNotFoundError("Analysis session not found")
	}

	return &dto.AnalysisResultsResponse{
		SessionId: session.ID,
		Count:     len(session.Results),
		Results:   candidatesToDTO(session.Results),
	}, nil
}

func candidatesToDTO(candidates []entity.ProductCandidate) []dto.AnalyzedProduct {
	out := make([]dto.AnalyzedProduct, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, dto.AnalyzedProduct{
			Category:  c.Category,
			Name:      c.Name,
			ImageName: c.SourceImage,
		})
	}
	return out
}
