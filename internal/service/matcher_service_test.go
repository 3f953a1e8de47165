package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"item-finder-be/internal/entity"
	"item-finder-be/internal/pkg/serverutils"
	"item-finder-be/internal/repository/memory"
	"item-finder-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func seedRepo() *fakeCategoryRepo {
	return newFakeCategoryRepo(
		entity.Category{Category: "Dairy Products", Aisle: "A1"},
		entity.Category{Category: "Dairy Desserts", Aisle: "A2"},
		entity.Category{Category: "Fresh Produce", Aisle: "B3"},
	)
}

func newMatcher(repo *fakeCategoryRepo, maxConcurrent int) IMatcherService {
	return NewMatcherService(repo, memory.NewSessionRepository(time.Minute), nil, maxConcurrent)
}

func TestMatchAisles(t *testing.T) {
	svc := newMatcher(seedRepo(), 4)

	results, err := svc.MatchAisles(context.Background(), []entity.ProductCandidate{
		{Category: "produce", Name: "Apples"},
		{Category: "Motor Oil", Name: "5W-30"},
		{Category: "DAIRY", Name: "Milk"},
	})

	assert.NoError(t, err)
	if !assert.Len(t, results, 3) {
		return
	}

	// Output order mirrors input order.
	assert.Equal(t, "Apples", results[0].Candidate.Name)
	assert.Equal(t, "B3", results[0].Aisle)
	assert.True(t, results[0].Matched)

	// No containment match yields the sentinel, not an error.
	assert.Equal(t, entity.AisleNotFound, results[1].Aisle)
	assert.False(t, results[1].Matched)

	// Case-insensitive substring; oldest row wins the tie between the two
	// dairy categories.
	assert.Equal(t, "A1", results[2].Aisle)
	assert.True(t, results[2].Matched)
}

func TestMatchAislesContainmentBothDirections(t *testing.T) {
	repo := newFakeCategoryRepo(
		entity.Category{Category: "Pasta", Aisle: "Aisle 4"},
	)
	svc := newMatcher(repo, 4)

	results, err := svc.MatchAisles(context.Background(), []entity.ProductCandidate{
		{Category: "pasta sauce", Name: "Marinara"},
		{Category: "Soap", Name: "Bar Soap"},
	})

	assert.NoError(t, err)
	if !assert.Len(t, results, 2) {
		return
	}

	// The candidate text containing the stored category counts as a match.
	assert.True(t, results[0].Matched)
	assert.Equal(t, "Aisle 4", results[0].Aisle)

	assert.False(t, results[1].Matched)
	assert.Equal(t, entity.AisleNotFound, results[1].Aisle)
}

func TestMatchAislesDuplicatesLookedUpSeparately(t *testing.T) {
	svc := newMatcher(seedRepo(), 1)

	results, err := svc.MatchAisles(context.Background(), []entity.ProductCandidate{
		{Category: "Dairy", Name: "Milk"},
		{Category: "Dairy", Name: "Yogurt"},
	})

	assert.NoError(t, err)
	if assert.Len(t, results, 2) {
		assert.Equal(t, "A1", results[0].Aisle)
		assert.Equal(t, "A1", results[1].Aisle)
		assert.Equal(t, "Milk", results[0].Candidate.Name)
		assert.Equal(t, "Yogurt", results[1].Candidate.Name)
	}
}

func TestMatchAislesEmptyInput(t *testing.T) {
	svc := newMatcher(seedRepo(), 4)

	results, err := svc.MatchAisles(context.Background(), nil)

	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestMatchAislesStoreFailure(t *testing.T) {
	repo := seedRepo()
	repo.failing = true
	svc := newMatcher(repo, 4)

	results, err := svc.MatchAisles(context.Background(), []entity.ProductCandidate{
		{Category: "Dairy", Name: "Milk"},
	})

	assert.Nil(t, results)
	var appErr *serverutils.AppError
	if assert.True(t, errors.As(err, &appErr)) {
		assert.Equal(t, 503, appErr.Code)
		assert.True(t, appErr.Retryable)
	}
}

func TestMatchAislesManyItemsKeepOrder(t *testing.T) {
	// More items than the concurrency cap; slot-by-index keeps order stable.
	svc := newMatcher(seedRepo(), 2)

	items := make([]entity.ProductCandidate, 20)
	for i := range items {
		if i%2 == 0 {
			items[i] = entity.ProductCandidate{Category: "Produce", Name: "Apples"}
		} else {
			items[i] = entity.ProductCandidate{Category: "Nothing Here", Name: "Mystery"}
		}
	}

	results, err := svc.MatchAisles(context.Background(), items)

	assert.NoError(t, err)
	if !assert.Len(t, results, 20) {
		return
	}
	for i, r := range results {
		if i%2 == 0 {
			assert.Equal(t, "B3", r.Aisle, "slot %d", i)
		} else {
			assert.Equal(t, entity.AisleNotFound, r.Aisle, "slot %d", i)
		}
	}
}

func TestMatchStoredExactMergeCaseInsensitive(t *testing.T) {
	repo := newFakeCategoryRepo(
		entity.Category{Category: "Pasta", Aisle: "Aisle 4"},
	)
	sessions := memory.NewSessionRepository(time.Minute)
	svc := NewMatcherService(repo, sessions, nil, 4)

	analysis := store.NewAnalysisSession([]entity.ProductCandidate{
		{Category: "Pasta", Name: "Spaghetti", SourceImage: "shelf.jpg"},
		{Category: "pasta", Name: "Marinara"},
		{Category: "Dairy", Name: "Milk"},
	})
	sessions.SaveAnalysis(analysis)

	results, err := svc.MatchStored(context.Background(), analysis.ID)

	assert.NoError(t, err)
	if !assert.Len(t, results, 3) {
		return
	}

	// The exact-case candidate pre-fetches the row; the merge itself folds
	// case, so the lowercase duplicate rides along.
	assert.True(t, results[0].Matched)
	assert.Equal(t, "Aisle 4", results[0].Aisle)
	assert.True(t, results[1].Matched)
	assert.Equal(t, "Aisle 4", results[1].Aisle)

	// Substring containment is the fuzzy path's business; the bulk pass is
	// exact-only and reports the sentinel.
	assert.False(t, results[2].Matched)
	assert.Equal(t, entity.AisleNotFound, results[2].Aisle)
}

func TestMatchStoredOldestRowWinsTheFold(t *testing.T) {
	repo := newFakeCategoryRepo(
		entity.Category{Category: "Pasta", Aisle: "Aisle 4"},
		entity.Category{Category: "PASTA", Aisle: "Aisle 9"},
	)
	sessions := memory.NewSessionRepository(time.Minute)
	svc := NewMatcherService(repo, sessions, nil, 4)

	analysis := store.NewAnalysisSession([]entity.ProductCandidate{
		{Category: "PASTA", Name: "Penne"},
	})
	sessions.SaveAnalysis(analysis)

	results, err := svc.MatchStored(context.Background(), analysis.ID)

	assert.NoError(t, err)
	if assert.Len(t, results, 1) {
		assert.True(t, results[0].Matched)
		assert.Equal(t, "Aisle 4", results[0].Aisle)
	}
}

func TestMatchStoredUnknownSession(t *testing.T) {
	svc := newMatcher(seedRepo(), 4)

	_, err := svc.MatchStored(context.Background(), "missing")

	var appErr *serverutils.AppError
	if assert.True(t, errors.As(err, &appErr)) {
		assert.Equal(t, 404, appErr.Code)
	}
}

func TestMatchStoredEmptyResults(t *testing.T) {
	sessions := memory.NewSessionRepository(time.Minute)
	svc := NewMatcherService(seedRepo(), sessions, nil, 4)

	analysis := store.NewAnalysisSession(nil)
	sessions.SaveAnalysis(analysis)

	_, err := svc.MatchStored(context.Background(), analysis.ID)

	var appErr *serverutils.AppError
	if assert.True(t, errors.As(err, &appErr)) {
		assert.Equal(t, 400, appErr.Code)
	}
}

func TestMatchStoredStoreFailure(t *testing.T) {
	repo := seedRepo()
	repo.failing = true
	sessions := memory.NewSessionRepository(time.Minute)
	svc := NewMatcherService(repo, sessions, nil, 4)

	analysis := store.NewAnalysisSession([]entity.ProductCandidate{
		{Category: "Dairy Products", Name: "Milk"},
	})
	sessions.SaveAnalysis(analysis)

	_, err := svc.MatchStored(context.Background(), analysis.ID)

	var appErr *serverutils.AppError
	if assert.True(t, errors.As(err, &appErr)) {
		assert.Equal(t, 503, appErr.Code)
		assert.True(t, appErr.Retryable)
	}
}
