package specification

import "gorm.io/gorm"

// CategoryContains is the fuzzy lookup strategy: case-insensitive substring
// containment in either direction, so the fragment "pasta sauce" hits the row
// "Pasta" and the fragment "dairy" hits "Dairy Products". Combine with
// OrderByOldest so that "first match wins" means oldest row wins, not
// whatever order the backend happens to scan in.
type CategoryContains struct {
	Fragment string
}

func (s CategoryContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category ILIKE ? OR ? ILIKE '%' || category || '%'", "%"+s.Fragment+"%", s.Fragment)
}

// ByCategory filters on the exact category text (case-sensitive).
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// CategoryIn is the bulk exact-match filter used for batch pre-fetch.
type CategoryIn struct {
	Categories []string
}

func (s CategoryIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category IN ?", s.Categories)
}

// OrderByOldest orders rows by insertion, id as tie-break. This is the
// deterministic ordering behind lookup-by-pattern.
type OrderByOldest struct{}

func (s OrderByOldest) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}
