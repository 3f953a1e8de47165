package service

import (
	"context"
	"strings"
	"sync"

	"item-finder-be/internal/entity"
	"item-finder-be/internal/pkg/serverutils"
	"item-finder-be/internal/repository/contract"
	"item-finder-be/internal/repository/memory"
	"item-finder-be/internal/repository/specification"
)

// IMatcherService assigns an aisle to each extracted candidate. MatchAisles
// is the fuzzy per-candidate lookup; MatchStored is the bulk exact-match
// pass over the results of an earlier analysis session.
type IMatcherService interface {
	MatchAisles(ctx context.Context, items []entity.ProductCandidate) ([]entity.MatchResult, error)
	MatchStored(ctx context.Context, analysisSessionID string) ([]entity.MatchResult, error)
}

type matcherService struct {
	categoryRepo  contract.CategoryRepository
	sessionRepo   *memory.SessionRepository
	cache         *aisleCache
	maxConcurrent int
}

func NewMatcherService(categoryRepo contract.CategoryRepository, sessionRepo *memory.SessionRepository, cache *aisleCache, maxConcurrent int) IMatcherService {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &matcherService{
		categoryRepo:  categoryRepo,
		sessionRepo:   sessionRepo,
		cache:         cache,
		maxConcurrent: maxConcurrent,
	}
}

// MatchAisles looks up each candidate independently: case-insensitive
// substring containment against the category column, oldest row wins. Output
// order mirrors input order and duplicates are matched separately, each with
// its own lookup. Lookups fan out concurrently under a cap since they are
// read-only and independent.
func (s *matcherService) MatchAisles(ctx context.Context, items []entity.ProductCandidate) ([]entity.MatchResult, error) {
	results := make([]entity.MatchResult, len(items))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	sem := make(chan struct{}, s.maxConcurrent)

	for i, item := range items {
		wg.Add(1)
		go func(i int, item entity.ProductCandidate) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			aisle, matched, err := s.lookupAisle(ctx, item.Category)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			if !matched {
				aisle = entity.AisleNotFound
			}
			results[i] = entity.MatchResult{
				Candidate: item,
				Aisle:     aisle,
				Matched:   matched,
			}
		}(i, item)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, serverutils.NewStoreUnavailableError(firstErr)
	}
	return results, nil
}

// MatchStored re-matches the results of a stored analysis session in one
// round trip: the category texts are pre-fetched with a single exact-match
// IN query, then merged back case-insensitively in result order. Exact-only
// on the database side, so a candidate that would fuzzy-match still comes
// back unmatched here; the fuzzy path is MatchAisles.
func (s *matcherService) MatchStored(ctx context.Context, analysisSessionID string) ([]entity.MatchResult, error) {
	session, found := s.sessionRepo.GetAnalysis(analysisSessionID)
	if !found {
		return nil, serverutils.NewNotFoundError("Analysis session not found")
	}
	if len(session.Results) == 0 {
		return nil, serverutils.NewClientInputError("No analysis results available")
	}

	categories := make([]string, 0, len(session.Results))
	for _, c := range session.Results {
		categories = append(categories, c.Category)
	}

	rows, err := s.categoryRepo.FindAll(ctx,
		specification.CategoryIn{Categories: categories},
		specification.OrderByOldest{},
	)
	if err != nil {
		return nil, serverutils.NewStoreUnavailableError(err)
	}

	// Oldest row wins per category text, folded case for the merge.
	aisles := make(map[string]string, len(rows))
	for _, row := range rows {
		key := strings.ToLower(row.Category)
		if _, ok := aisles[key]; !ok {
			aisles[key] = row.Aisle
		}
	}

	results := make([]entity.MatchResult, 0, len(session.Results))
	for _, c := range session.Results {
		aisle, matched := aisles[strings.ToLower(c.Category)]
		if !matched {
			aisle = entity.AisleNotFound
		}
		results = append(results, entity.MatchResult{
			Candidate: c,
			Aisle:     aisle,
			Matched:   matched,
		})
	}
	return results, nil
}

func (s *matcherService) lookupAisle(ctx context.Context, fragment string) (string, bool, error) {
	if aisle, ok := s.cache.Get(ctx, fragment); ok {
		return aisle, true, nil
	}

	record, err := s.categoryRepo.FindOne(ctx,
		specification.CategoryContains{Fragment: fragment},
		specification.OrderByOldest{},
	)
	if err != nil {
		return "", false, err
	}
	if record == nil {
		return "", false, nil
	}

	s.cache.Set(ctx, fragment, record.Aisle)
	return record.Aisle, true, nil
}
