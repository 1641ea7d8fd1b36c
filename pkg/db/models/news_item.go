package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewsItem is an editorial entry surfaced on the storefront news page.
type NewsItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"column:title;type:text;not null"`
	Summary     *string   `gorm:"column:summary"`
	Body        string    `gorm:"column:body;type:text;not null"`
	ImageURL    *string   `gorm:"column:image_url"`
	PublishedAt time.Time `gorm:"column:published_at;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (n *NewsItem) BeforeCreate(*gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
