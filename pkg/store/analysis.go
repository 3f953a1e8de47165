package store

import (
	"item-finder-be/internal/entity"

	"github.com/google/uuid"
)

// AnalysisSession holds the extraction output of one uploaded batch, scoped
// to an ID so concurrent uploads never see each other's results.
type AnalysisSession struct {
	ID      string                    `json:"id"`
	Results []entity.ProductCandidate `json:"results"`
}

func NewAnalysisSession(results []entity.ProductCandidate) *AnalysisSession {
	return &AnalysisSession{
		ID:      uuid.New().String(),
		Results: results,
	}
}
