package posts

import (
	"time"

	"github.com/google/uuid"

	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
	"github.com/hyun090116/vortex-game-explorer/pkg/enums"
)

// PostDTO is the board list/detail shape with denormalized counters.
type PostDTO struct {
	ID           uuid.UUID          `json:"id"`
	AuthorID     uuid.UUID          `json:"author_id"`
	Category     enums.PostCategory `json:"category"`
	Title        string             `json:"title"`
	Body         string             `json:"body"`
	GameTitle    *string            `json:"game_title,omitempty"`
	LikeCount    int                `json:"like_count"`
	CommentCount int                `json:"comment_count"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// CommentDTO is one flat comment under a post.
type CommentDTO struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// PostDetail bundles a post with its comments for the detail page.
type PostDetail struct {
	Post     PostDTO      `json:"post"`
	Comments []CommentDTO `json:"comments"`
}

// ListResult is one board page plus the cursor for the next one.
type ListResult struct {
	Posts      []PostDTO `json:"posts"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// CreatePostInput is the validated payload for a new board post.
type CreatePostInput struct {
	Category  enums.PostCategory `json:"category" validate:"required"`
	Title     string             `json:"title" validate:"required,max=200"`
	Body      string             `json:"body" validate:"required"`
	GameTitle *string            `json:"game_title,omitempty"`
}

// ToggleLikeResult reports the like state after the toggle, with the counter
// the board renders optimistically.
type ToggleLikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

func FromModel(p *models.Post) *PostDTO {
	if p == nil {
		return nil
	}

	return &PostDTO{
		ID:           p.ID,
		AuthorID:     p.AuthorID,
		Category:     p.Category,
		Title:        p.Title,
		Body:         p.Body,
		GameTitle:    p.GameTitle,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func commentFromModel(c *models.PostComment) CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}
