package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyun090116/vortex-game-explorer/pkg/enums"
)

// Post is a community board entry. Counters are denormalized and maintained
// inside the same transaction as the row they count.
type Post struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey"`
	AuthorID     uuid.UUID          `gorm:"column:author_id;type:uuid;not null;index"`
	Category     enums.PostCategory `gorm:"column:category;type:text;not null;index"`
	Title        string             `gorm:"column:title;type:text;not null"`
	Body         string             `gorm:"column:body;type:text;not null"`
	GameTitle    *string            `gorm:"column:game_title"`
	LikeCount    int                `gorm:"column:like_count;not null;default:0"`
	CommentCount int                `gorm:"column:comment_count;not null;default:0"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PostComment is a flat comment under a post.
type PostComment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PostID    uuid.UUID `gorm:"column:post_id;type:uuid;not null;index"`
	AuthorID  uuid.UUID `gorm:"column:author_id;type:uuid;not null"`
	Body      string    `gorm:"column:body;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *PostComment) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// PostLike marks that a user liked a post, at most once.
type PostLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PostID    uuid.UUID `gorm:"column:post_id;type:uuid;not null;uniqueIndex:uq_post_likes_post_user"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_post_likes_post_user"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (l *PostLike) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
