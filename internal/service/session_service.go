package service

import (
	"context"
	"strings"
	"time"

	"item-finder-be/internal/dto"
	"item-finder-be/internal/entity"
	"item-finder-be/internal/pkg/logger"
	"item-finder-be/internal/pkg/serverutils"
	"item-finder-be/internal/repository/contract"
	"item-finder-be/internal/repository/memory"
	"item-finder-be/pkg/events"
	pktNats "item-finder-be/pkg/nats"
	"item-finder-be/pkg/store"
)

// ISessionService drives the reconciliation workflow: building a session out
// of match results, tracking in-flight corrections, and committing confirmed
// rows back to the category table one row at a time.
type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	Show(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	BeginEdit(ctx context.Context, sessionID, itemID string) error
	SetProposedAisle(ctx context.Context, sessionID, itemID, text string) error
	Confirm(ctx context.Context, sessionID, itemID string) (*dto.ConfirmResponse, error)
}

type sessionService struct {
	sessionRepo      *memory.SessionRepository
	categoryRepo     contract.CategoryRepository
	matcherService   IMatcherService
	cache            *aisleCache
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
}

func NewSessionService(
	sessionRepo *memory.SessionRepository,
	categoryRepo contract.CategoryRepository,
	matcherService IMatcherService,
	cache *aisleCache,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		sessionRepo:      sessionRepo,
		categoryRepo:     categoryRepo,
		matcherService:   matcherService,
		cache:            cache,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

// Create matches the given candidates and builds a fresh reconciliation
// session from the results. Each call yields a distinct session id; earlier
// sessions stay valid until their TTL, so re-running an analysis never drops
// another screen's in-flight edits.
func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	candidates, err := s.resolveCandidates(req)
	if err != nil {
		return nil, err
	}

	results, err := s.matcherService.MatchAisles(ctx, candidates)
	if err != nil {
		return nil, err
	}

	session := store.NewReconciliationSession(results)
	s.sessionRepo.SaveReconciliation(session)

	return sessionToDTO(session.Snapshot()), nil
}

func (s *sessionService) resolveCandidates(req *dto.CreateSessionRequest) ([]entity.ProductCandidate, error) {
	if req.AnalysisSessionId != "" {
		analysis, found := s.sessionRepo.GetAnalysis(req.AnalysisSessionId)
		if !found {
			return nil, serverutils.NewNotFoundError("Analysis session not found")
		}
		return analysis.Results, nil
	}

	if len(req.Items) == 0 {
		return nil, serverutils.NewClientInputError("No items provided")
	}
	candidates := make([]entity.ProductCandidate, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Category == "" {
			return nil, serverutils.NewClientInputError("Item category is required")
		}
		candidates = append(candidates, entity.ProductCandidate{
			Category:    item.Category,
			Name:        item.Name,
			SourceImage: item.ImageName,
		})
	}
	return candidates, nil
}

func (s *sessionService) Show(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	session, found := s.sessionRepo.GetReconciliation(sessionID)
	if !found {
		return nil, serverutils.NewNotFoundError("Reconciliation session not found")
	}
	return sessionToDTO(session.Snapshot()), nil
}

func (s *sessionService) BeginEdit(ctx context.Context, sessionID, itemID string) error {
	session, found := s.sessionRepo.GetReconciliation(sessionID)
	if !found {
		return serverutils.NewNotFoundError("Reconciliation session not found")
	}
	if !session.BeginEdit(itemID) {
		return serverutils.NewNotFoundError("Item not found in session")
	}
	return nil
}

func (s *sessionService) SetProposedAisle(ctx context.Context, sessionID, itemID, text string) error {
	session, found := s.sessionRepo.GetReconciliation(sessionID)
	if !found {
		return serverutils.NewNotFoundError("Reconciliation session not found")
	}
	if !session.SetProposedAisle(itemID, text) {
		return serverutils.NewNotFoundError("Item not found in session")
	}
	return nil
}

// Confirm is the terminal action for one row. A non-editing matched row is
// dismissed without touching storage. An editing row persists its correction
// via exact-match aisle update; an unmatched entry persists a new category
// row. Empty input marks the row invalid and keeps it. On a store failure
// the row is left untouched and the error is surfaced as retryable.
func (s *sessionService) Confirm(ctx context.Context, sessionID, itemID string) (*dto.ConfirmResponse, error) {
	session, found := s.sessionRepo.GetReconciliation(sessionID)
	if !found {
		return nil, serverutils.NewNotFoundError("Reconciliation session not found")
	}

	if item := session.FindItem(itemID); item != nil {
		return s.confirmItem(ctx, session, item)
	}
	if entry := session.FindUnmatched(itemID); entry != nil {
		return s.confirmUnmatched(ctx, session, entry)
	}
	return nil, serverutils.NewNotFoundError("Item not found in session")
}

func (s *sessionService) confirmItem(ctx context.Context, session *store.ReconciliationSession, item *store.ReconciliationItem) (*dto.ConfirmResponse, error) {
	if !item.Editing {
		// Pure dismissal: the row was reviewed and accepted as-is.
		session.Remove(item.ID)
		return &dto.ConfirmResponse{ItemId: item.ID, Removed: true}, nil
	}

	proposed := strings.TrimSpace(item.ProposedAisle)
	if proposed == "" {
		session.MarkInvalid(item.ID)
		return &dto.ConfirmResponse{ItemId: item.ID, Invalid: true}, nil
	}

	affected, err := s.categoryRepo.UpdateAisle(ctx, item.Category, proposed)
	if err != nil {
		return nil, serverutils.NewStoreUnavailableError(err)
	}

	s.cache.Invalidate(ctx, item.Category)
	s.publishEvent(ctx, events.TypeAisleUpdated, map[string]interface{}{
		"category": item.Category,
		"aisle":    proposed,
		"affected": affected,
	})

	// Zero affected rows still counts as reviewed; the row goes away.
	session.Remove(item.ID)
	return &dto.ConfirmResponse{ItemId: item.ID, Removed: true, Affected: affected}, nil
}

func (s *sessionService) confirmUnmatched(ctx context.Context, session *store.ReconciliationSession, entry *store.UnmatchedEntry) (*dto.ConfirmResponse, error) {
	proposed := strings.TrimSpace(entry.ProposedAisle)
	if proposed == "" {
		session.MarkInvalid(entry.ID)
		return &dto.ConfirmResponse{ItemId: entry.ID, Invalid: true}, nil
	}

	record := entity.Category{
		Category:  entry.Category,
		Aisle:     proposed,
		CreatedAt: time.Now(),
	}
	created, err := s.categoryRepo.InsertIfAbsent(ctx, &record)
	if err != nil {
		return nil, serverutils.NewStoreUnavailableError(err)
	}

	s.cache.Invalidate(ctx, entry.Category)
	if created {
		s.publishEvent(ctx, events.TypeCategoryAdded, map[string]interface{}{
			"id":       record.Id,
			"category": record.Category,
			"aisle":    record.Aisle,
		})
	}

	// The silent skip (category already present) also resolves the entry.
	session.Remove(entry.ID)
	return &dto.ConfirmResponse{ItemId: entry.ID, Removed: true, Created: created}, nil
}

func (s *sessionService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}

	if s.publisherService != nil {
		if err := s.publisherService.Publish(ctx, evt); err != nil {
			s.log.Warn("reconcile", "Failed to publish audit event", map[string]interface{}{
				"type":  eventType,
				"error": err.Error(),
			})
		}
	}
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("reconcile", "Failed to publish NATS event", map[string]interface{}{
				"type":  eventType,
				"error": err.Error(),
			})
		}
	}
}

func sessionToDTO(session *store.ReconciliationSession) *dto.SessionResponse {
	res := &dto.SessionResponse{
		SessionId: session.ID,
		Groups:    make([]dto.SessionAisleGroup, 0, len(session.Groups)),
		Unmatched: make([]dto.SessionUnmatchedEntry, 0, len(session.Unmatched)),
	}

	for _, g := range session.Groups {
		group := dto.SessionAisleGroup{
			Aisle: g.Aisle,
			Items: make([]dto.SessionItem, 0, len(g.Items)),
		}
		for _, item := range g.Items {
			group.Items = append(group.Items, dto.SessionItem{
				Id:            item.ID,
				Category:      item.Category,
				Name:          item.Name,
				ImageName:     item.SourceImage,
				Editing:       item.Editing,
				ProposedAisle: item.ProposedAisle,
				Invalid:       item.Invalid,
			})
		}
		res.Groups = append(res.Groups, group)
	}

	for _, e := range session.Unmatched {
		res.Unmatched = append(res.Unmatched, dto.SessionUnmatchedEntry{
			Id:            e.ID,
			Category:      e.Category,
			Name:          e.Name,
			ImageName:     e.SourceImage,
			ProposedAisle: e.ProposedAisle,
			Invalid:       e.Invalid,
		})
	}

	return res
}
