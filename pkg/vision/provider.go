package vision

import (
	"context"
	"encoding/json"
	"strings"

	"item-finder-be/internal/entity"
)

// Provider turns one product photo into zero or more candidates. On
// unparseable model output it returns the documented fallback candidate
// rather than an error; an error means the call itself failed.
type Provider interface {
	ExtractProducts(ctx context.Context, image []byte, mimeType string) ([]entity.ProductCandidate, error)
}

// Fallback candidate when the model answered but the answer could not be
// parsed into product rows.
func unknownCandidate() entity.ProductCandidate {
	return entity.ProductCandidate{
		Category: "Unknown",
		Name:     "Could not extract product",
	}
}

// ParseCandidates extracts {category, name} rows from raw model output.
// Markdown code fences are tolerated; rows missing either field are skipped.
// A completely unparseable payload yields the single Unknown fallback.
func ParseCandidates(raw string) []entity.ProductCandidate {
	text := strings.TrimSpace(raw)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	var rows []struct {
		Category string `json:"category"`
		Name     string `json:"name"`
	}
	if err := json.Unmarshal([]byte(text), &rows); err != nil {
		return []entity.ProductCandidate{unknownCandidate()}
	}

	candidates := make([]entity.ProductCandidate, 0, len(rows))
	for _, row := range rows {
		category := strings.TrimSpace(row.Category)
		name := strings.TrimSpace(row.Name)
		if category == "" || name == "" {
			continue
		}
		candidates = append(candidates, entity.ProductCandidate{
			Category: category,
			Name:     name,
		})
	}
	return candidates
}
