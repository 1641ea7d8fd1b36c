package posts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
	"github.com/hyun090116/vortex-game-explorer/pkg/enums"
	"github.com/hyun090116/vortex-game-explorer/pkg/pagination"
)

// Repository wires community board persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreatePost inserts a new board post.
func (r *Repository) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// FindPostByID loads a post row.
func (r *Repository) FindPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns one board page, optionally scoped to a category.
func (r *Repository) ListPosts(ctx context.Context, category *enums.PostCategory, params pagination.Params) ([]models.Post, string, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx).Model(&models.Post{})
	if category != nil {
		qb = qb.Where("category = ?", *category)
	}
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Post
	if err := qb.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer).Find(&rows).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, nextCursor, nil
}

// ListComments returns all comments for a post, oldest first.
func (r *Repository) ListComments(ctx context.Context, postID uuid.UUID) ([]models.PostComment, error) {
	var rows []models.PostComment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

// CreateComment inserts a comment row.
func (r *Repository) CreateComment(ctx context.Context, comment *models.PostComment) (*models.PostComment, error) {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// AdjustCommentCount moves the denormalized comment counter.
func (r *Repository) AdjustCommentCount(ctx context.Context, postID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", postID).
		Update("comment_count", gorm.Expr("comment_count + ?", delta)).Error
}

// AdjustLikeCount moves the denormalized like counter.
func (r *Repository) AdjustLikeCount(ctx context.Context, postID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", postID).
		Update("like_count", gorm.Expr("like_count + ?", delta)).Error
}

// FindLike loads the like row for (post, user) if present.
func (r *Repository) FindLike(ctx context.Context, postID, userID uuid.UUID) (*models.PostLike, error) {
	var like models.PostLike
	if err := r.db.WithContext(ctx).First(&like, "post_id = ? AND user_id = ?", postID, userID).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

// CreateLike inserts a like row; the unique index rejects duplicates.
func (r *Repository) CreateLike(ctx context.Context, like *models.PostLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// DeleteLike removes the like row for (post, user).
func (r *Repository) DeleteLike(ctx context.Context, postID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.PostLike{}).Error
}
