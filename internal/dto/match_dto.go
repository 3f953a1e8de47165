package dto

type MatchItem struct {
	Category  string `json:"category" validate:"required"`
	Name      string `json:"name"`
	ImageName string `json:"imageName"`
}

type MatchAislesRequest struct {
	Items []MatchItem `json:"items" validate:"required,min=1,dive"`
}

type MatchedItem struct {
	Category  string `json:"category"`
	Name      string `json:"name"`
	ImageName string `json:"imageName,omitempty"`
	Aisle     string `json:"aisle"`
	Matched   bool   `json:"matched"`
}

type MatchAislesResponse struct {
	Processed int           `json:"processed"`
	Results   []MatchedItem `json:"results"`
}

// StoredMatchItem echoes the analyzed fields alongside the lookup outcome so
// the client can render the merge without refetching the analysis results.
type StoredMatchItem struct {
	AnalyzedCategory string `json:"analyzedCategory"`
	AnalyzedName     string `json:"analyzedName"`
	Aisle            string `json:"aisle"`
	ImageName        string `json:"imageName,omitempty"`
	Matched          bool   `json:"matched"`
}

type MatchStoredResponse struct {
	MatchedCount int               `json:"matchedCount"`
	Results      []StoredMatchItem `json:"results"`
}
