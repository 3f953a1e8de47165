package mapper

import (
	"time"

	"item-finder-be/internal/entity"
	"item-finder-be/internal/model"
)

type CategoryMapper struct{}

func NewCategoryMapper() *CategoryMapper {
	return &CategoryMapper{}
}

func (m *CategoryMapper) ToEntity(c *model.Category) *entity.Category {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Category{
		Id:        c.Id,
		Category:  c.Category,
		Aisle:     c.Aisle,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *CategoryMapper) ToEntities(models []*model.Category) []*entity.Category {
	entities := make([]*entity.Category, 0, len(models))
	for _, c := range models {
		entities = append(entities, m.ToEntity(c))
	}
	return entities
}

func (m *CategoryMapper) ToModel(c *entity.Category) *model.Category {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Category{
		Id:        c.Id,
		Category:  c.Category,
		Aisle:     c.Aisle,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
	}
}
