package entity

// Sentinel aisle value for candidates with no matching category row.
// Kept as a literal string because clients render it directly.
const AisleNotFound = "Not found"

// ProductCandidate is one {category, name} pair extracted from a product
// image. Immutable once produced; one image yields zero or more candidates.
type ProductCandidate struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	SourceImage string `json:"image_name"`
}

// MatchResult pairs a candidate with the outcome of its aisle lookup.
// Derived, never persisted.
type MatchResult struct {
	Candidate ProductCandidate `json:"candidate"`
	Aisle     string           `json:"aisle"`
	Matched   bool             `json:"matched"`
}
