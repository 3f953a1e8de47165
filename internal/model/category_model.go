package model

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Category  string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Aisle     string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Category) TableName() string {
	return "category_aisles"
}
