package service

import (
	"context"
	"time"

	"item-finder-be/internal/dto"
	"item-finder-be/internal/entity"
	"item-finder-be/internal/pkg/logger"
	"item-finder-be/internal/pkg/serverutils"
	"item-finder-be/internal/repository/contract"
	"item-finder-be/internal/repository/specification"
	"item-finder-be/pkg/events"
	pktNats "item-finder-be/pkg/nats"

	"github.com/google/uuid"
)

type ICategoryService interface {
	Add(ctx context.Context, req *dto.AddCategoryRequest) (*dto.AddCategoryResponse, error)
	UpdateAisle(ctx context.Context, req *dto.UpdateAisleRequest) (*dto.UpdateAisleResponse, error)
	Show(ctx context.Context, id string) (*dto.CategoryRow, error)
	List(ctx context.Context, q dto.ListCategoriesQuery) (*dto.ListCategoriesResponse, error)
}

type categoryService struct {
	categoryRepo     contract.CategoryRepository
	cache            *aisleCache
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
}

func NewCategoryService(
	categoryRepo contract.CategoryRepository,
	cache *aisleCache,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ICategoryService {
	return &categoryService{
		categoryRepo:     categoryRepo,
		cache:            cache,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

// Add inserts a category -> aisle row unless the category already exists.
// The silent skip on conflict is not an error; the response carries a nil id
// in that case.
func (s *categoryService) Add(ctx context.Context, req *dto.AddCategoryRequest) (*dto.AddCategoryResponse, error) {
	record := entity.Category{
		Category:  req.Category,
		Aisle:     req.Aisle,
		CreatedAt: time.Now(),
	}

	created, err := s.categoryRepo.InsertIfAbsent(ctx, &record)
	if err != nil {
		return nil, serverutils.NewStoreUnavailableError(err)
	}

	if created {
		s.cache.Invalidate(ctx, record.Category)
		s.publishEvent(ctx, events.TypeCategoryAdded, map[string]interface{}{
			"id":       record.Id,
			"category": record.Category,
			"aisle":    record.Aisle,
		})
	}

	res := &dto.AddCategoryResponse{Created: created}
	if created {
		id := record.Id
		res.Id = &id
	}
	return res, nil
}

// UpdateAisle reassigns the aisle of every row whose category exactly equals
// the given text. Zero affected rows is a valid outcome.
func (s *categoryService) UpdateAisle(ctx context.Context, req *dto.UpdateAisleRequest) (*dto.UpdateAisleResponse, error) {
	affected, err := s.categoryRepo.UpdateAisle(ctx, req.Category, req.Aisle)
	if err != nil {
		return nil, serverutils.NewStoreUnavailableError(err)
	}

	s.cache.Invalidate(ctx, req.Category)
	s.publishEvent(ctx, events.TypeAisleUpdated, map[string]interface{}{
		"category": req.Category,
		"aisle":    req.Aisle,
		"affected": affected,
	})

	return &dto.UpdateAisleResponse{Affected: affected}, nil
}

func (s *categoryService) Show(ctx context.Context, id string) (*dto.CategoryRow, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, serverutils.NewClientInputError("Invalid category id")
	}

	record, err := s.categoryRepo.FindOne(ctx, specification.ByID{ID: parsed})
	if err != nil {
		return nil, serverutils.NewStoreUnavailableError(err)
	}
	if record == nil {
		return nil, serverutils.NewNotFoundError("Category not found")
	}

	return &dto.CategoryRow{
		Id:        record.Id,
		Category:  record.Category,
		Aisle:     record.Aisle,
		CreatedAt: record.CreatedAt,
	}, nil
}

// List returns rows oldest first by default; the query can flip the order
// and cap the result set.
func (s *categoryService) List(ctx context.Context, q dto.ListCategoriesQuery) (*dto.ListCategoriesResponse, error) {
	specs := make([]specification.Specification, 0, 2)
	if q.NewestFirst {
		specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})
	} else {
		specs = append(specs, specification.OrderByOldest{})
	}
	if q.Limit > 0 {
		specs = append(specs, specification.Limit{N: q.Limit})
	}

	records, err := s.categoryRepo.FindAll(ctx, specs...)
	if err != nil {
		return nil, serverutils.NewStoreUnavailableError(err)
	}

	rows := make([]dto.CategoryRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, dto.CategoryRow{
			Id:        r.Id,
			Category:  r.Category,
			Aisle:     r.Aisle,
			CreatedAt: r.CreatedAt,
		})
	}
	return &dto.ListCategoriesResponse{Count: len(rows), Categories: rows}, nil
}

// publishEvent mirrors a mutation onto the audit topic and, when connected,
// the NATS bus. Event delivery is auxiliary; failures are logged, never
// surfaced.
func (s *categoryService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}

	if s.publisherService != nil {
		if err := s.publisherService.Publish(ctx, evt); err != nil {
			s.log.Warn("category", "Failed to publish audit event", map[string]interface{}{
				"type":  eventType,
				"error": err.Error(),
			})
		}
	}
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("category", "Failed to publish NATS event", map[string]interface{}{
				"type":  eventType,
				"error": err.Error(),
			})
		}
	}
}
