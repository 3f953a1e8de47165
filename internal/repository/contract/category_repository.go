package contract

import (
	"context"

	"item-finder-be/internal/entity"
	"item-finder-be/internal/repository/specification"
)

type CategoryRepository interface {
	// InsertIfAbsent creates the row unless one with the identical category
	// text already exists. Returns false without error on the silent skip;
	// the entity's Id is populated when a row was created.
	InsertIfAbsent(ctx context.Context, category *entity.Category) (bool, error)

	// UpdateAisle sets the aisle for every row whose category exactly equals
	// the given text and returns the number of rows changed. Zero is a valid
	// outcome, not an error.
	UpdateAisle(ctx context.Context, category, aisle string) (int64, error)

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Category, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Category, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
