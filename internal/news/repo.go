package news

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
	"github.com/hyun090116/vortex-game-explorer/pkg/pagination"
)

// Repository wires news persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a single news item.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.NewsItem, error) {
	var item models.NewsItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListPublished returns one page of items whose publish time has passed,
// newest first. The cursor rides on published_at so scheduled items slot in
// at the right place once they go live.
func (r *Repository) ListPublished(ctx context.Context, now time.Time, params pagination.Params) ([]models.NewsItem, string, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx).Model(&models.NewsItem{}).
		Where("published_at <= ?", now)
	if cursor != nil {
		qb = qb.Where("(published_at < ?) OR (published_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.NewsItem
	if err := qb.Order("published_at DESC").Order("id DESC").Limit(limitWithBuffer).Find(&rows).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.PublishedAt, ID: last.ID})
	}
	return rows, nextCursor, nil
}
