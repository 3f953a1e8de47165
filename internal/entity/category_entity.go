package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category is one row of the category -> aisle table. The category text is the
// effective lookup key; matching against it is case-insensitive and
// substring-tolerant (see repository/specification.CategoryContains).
type Category struct {
	Id        uuid.UUID
	Category  string
	Aisle     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
