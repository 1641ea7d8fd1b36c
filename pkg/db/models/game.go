package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/hyun090116/vortex-game-explorer/pkg/enums"
)

// Game is a catalog entry. Prices are integer KRW; DiscountPercent is applied
// at read time, never persisted into Price.
type Game struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Title           string           `gorm:"column:title;type:text;not null"`
	Slug            string           `gorm:"column:slug;type:text;not null;uniqueIndex:uq_games_slug"`
	Description     *string          `gorm:"column:description"`
	Developer       *string          `gorm:"column:developer"`
	Price           int64            `gorm:"column:price;not null;default:0"`
	DiscountPercent int              `gorm:"column:discount_percent;not null;default:0"`
	CoverImage      *string          `gorm:"column:cover_image"`
	TrailerURL      *string          `gorm:"column:trailer_url"`
	Genre           pq.StringArray   `gorm:"column:genre;type:text[]"`
	Rating          float64          `gorm:"column:rating;not null;default:0"`
	ReleaseDate     *time.Time       `gorm:"column:release_date"`
	Status          enums.GameStatus `gorm:"column:status;type:text;not null"`
	IsFeatured      bool             `gorm:"column:is_featured;not null"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the id and default visibility client-side.
func (g *Game) BeforeCreate(*gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.Status == "" {
		g.Status = enums.GameStatusActive
	}
	return nil
}

// DiscountedPrice returns the effective price after the discount.
func (g Game) DiscountedPrice() int64 {
	if g.DiscountPercent <= 0 {
		return g.Price
	}
	if g.DiscountPercent >= 100 {
		return 0
	}
	return g.Price * int64(100-g.DiscountPercent) / 100
}
