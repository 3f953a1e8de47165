package dto

import (
	"time"

	"github.com/google/uuid"
)

type AddCategoryRequest struct {
	Category string `json:"category" validate:"required"`
	Aisle    string `json:"aisle" validate:"required"`
}

type AddCategoryResponse struct {
	Id      *uuid.UUID `json:"id"`
	Created bool       `json:"created"`
}

type UpdateAisleRequest struct {
	Category string `json:"category" validate:"required"`
	Aisle    string `json:"aisle" validate:"required"`
}

type UpdateAisleResponse struct {
	Affected int64 `json:"affected"`
}

// ListCategoriesQuery carries the optional listing knobs. Zero values mean
// the full table, oldest first.
type ListCategoriesQuery struct {
	Limit       int
	NewestFirst bool
}

type CategoryRow struct {
	Id        uuid.UUID `json:"id"`
	Category  string    `json:"category"`
	Aisle     string    `json:"aisle"`
	CreatedAt time.Time `json:"created_at"`
}

type ListCategoriesResponse struct {
	Count      int           `json:"count"`
	Categories []CategoryRow `json:"categories"`
}
