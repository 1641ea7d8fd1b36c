package games

import (
	"time"

	"github.com/google/uuid"

	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
)

// GameDTO is the catalog transport shape. DiscountedPrice is derived so
// clients never recompute sale pricing.
type GameDTO struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Description     *string    `json:"description,omitempty"`
	Developer       *string    `json:"developer,omitempty"`
	Price           int64      `json:"price"`
	DiscountPercent int        `json:"discount_percent"`
	DiscountedPrice int64      `json:"discounted_price"`
	CoverImage      *string    `json:"cover_image,omitempty"`
	TrailerURL      *string    `json:"trailer_url,omitempty"`
	Genre           []string   `json:"genre"`
	Rating          float64    `json:"rating"`
	ReleaseDate     *time.Time `json:"release_date,omitempty"`
	IsFeatured      bool       `json:"is_featured"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ListResult is one catalog page plus the cursor for the next one.
type ListResult struct {
	Games      []GameDTO `json:"games"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

func FromModel(g *models.Game) *GameDTO {
	if g == nil {
		return nil
	}

	return &GameDTO{
		ID:              g.ID,
		Title:           g.Title,
		Slug:            g.Slug,
		Description:     g.Description,
		Developer:       g.Developer,
		Price:           g.Price,
		DiscountPercent: g.DiscountPercent,
		DiscountedPrice: g.DiscountedPrice(),
		CoverImage:      g.CoverImage,
		TrailerURL:      g.TrailerURL,
		Genre:           []string(g.Genre),
		Rating:          g.Rating,
		ReleaseDate:     g.ReleaseDate,
		IsFeatured:      g.IsFeatured,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
}
