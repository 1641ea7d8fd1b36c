package news

import (
	"time"

	"github.com/google/uuid"

	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
)

// NewsItemDTO is the storefront news shape for both list and detail.
type NewsItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Summary     *string   `json:"summary,omitempty"`
	Body        string    `json:"body"`
	ImageURL    *string   `json:"image_url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// ListResult is one news page plus the cursor for the next one.
type ListResult struct {
	Items      []NewsItemDTO `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

func FromModel(n *models.NewsItem) *NewsItemDTO {
	if n == nil {
		return nil
	}

	return &NewsItemDTO{
		ID:          n.ID,
		Title:       n.Title,
		Summary:     n.Summary,
		Body:        n.Body,
		ImageURL:    n.ImageURL,
		PublishedAt: n.PublishedAt,
	}
}
