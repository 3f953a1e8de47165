package vision

import (
	"testing"

	"item-finder-be/internal/entity"
)

func TestParseCandidates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []entity.ProductCandidate
	}{
		{
			name: "plain json array",
			raw:  `[{"category": "Dairy", "name": "Whole Milk"}]`,
			want: []entity.ProductCandidate{
				{Category: "Dairy", Name: "Whole Milk"},
			},
		},
		{
			name: "json fenced in markdown",
			raw:  "```json\n[{\"category\": \"Produce\", \"name\": \"Bananas\"}]\n```",
			want: []entity.ProductCandidate{
				{Category: "Produce", Name: "Bananas"},
			},
		},
		{
			name: "bare fences",
			raw:  "```\n[{\"category\": \"Snacks\", \"name\": \"Chips\"}]\n```",
			want: []entity.ProductCandidate{
				{Category: "Snacks", Name: "Chips"},
			},
		},
		{
			name: "multiple products",
			raw:  `[{"category": "Dairy", "name": "Milk"}, {"category": "Bakery", "name": "Bread"}]`,
			want: []entity.ProductCandidate{
				{Category: "Dairy", Name: "Milk"},
				{Category: "Bakery", Name: "Bread"},
			},
		},
		{
			name: "rows missing a field are skipped",
			raw:  `[{"category": "Dairy", "name": "Milk"}, {"category": "", "name": "Mystery"}, {"category": "Frozen"}]`,
			want: []entity.ProductCandidate{
				{Category: "Dairy", Name: "Milk"},
			},
		},
		{
			name: "whitespace-only fields are skipped",
			raw:  `[{"category": "  ", "name": "Milk"}]`,
			want: []entity.ProductCandidate{},
		},
		{
			name: "fields get trimmed",
			raw:  `[{"category": " Dairy ", "name": " Milk "}]`,
			want: []entity.ProductCandidate{
				{Category: "Dairy", Name: "Milk"},
			},
		},
		{
			name: "unparseable payload yields fallback",
			raw:  "The image shows a carton of milk.",
			want: []entity.ProductCandidate{
				{Category: "Unknown", Name: "Could not extract product"},
			},
		},
		{
			name: "empty payload yields fallback",
			raw:  "",
			want: []entity.ProductCandidate{
				{Category: "Unknown", Name: "Could not extract product"},
			},
		},
		{
			name: "empty array yields no candidates",
			raw:  `[]`,
			want: []entity.ProductCandidate{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCandidates(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d candidates, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("candidate %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
