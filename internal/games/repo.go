package games

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
	"github.com/hyun090116/vortex-game-explorer/pkg/enums"
	"github.com/hyun090116/vortex-game-explorer/pkg/pagination"
)

// Repository wires together catalog persistence helpers.
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

// FindByID loads a game regardless of visibility.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	var game models.Game
	if err := r.db.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// FindByIDs loads the games matching the provided ids. Missing ids are simply
// absent from the result.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Game, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Game
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindBySlug loads a game by its catalog slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Game, error) {
	var game models.Game
	if err := r.db.WithContext(ctx).First(&game, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// FindByTitle loads a game by exact title match.
func (r *Repository) FindByTitle(ctx context.Context, title string) (*models.Game, error) {
	var game models.Game
	if err := r.db.WithContext(ctx).First(&game, "title = ?", title).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// Create inserts a new catalog row.
func (r *Repository) Create(ctx context.Context, game *models.Game) (*models.Game, error) {
	if err := r.db.WithContext(ctx).Create(game).Error; err != nil {
		return nil, err
	}
	return game, nil
}

type gameListQuery struct {
	Pagination pagination.Params
	Filters    ListFilters
}

// ListActive returns one page of visible catalog rows ordered newest first.
func (r *Repository) ListActive(ctx context.Context, query gameListQuery) ([]models.Game, string, error) {
	pageSize := pagination.NormalizeLimit(query.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(query.Pagination.Limit)

	cursor, err := pagination.ParseCursor(query.Pagination.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Where("status = ?", enums.GameStatusActive)

	filter := query.Filters
	if search := strings.TrimSpace(filter.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(title) LIKE ? OR LOWER(developer) LIKE ?)", pattern, pattern)
	}
	if genre := strings.TrimSpace(filter.Genre); genre != "" {
		if r.db.Dialector.Name() == "postgres" {
			qb = qb.Where("? = ANY(genre)", genre)
		} else {
			// The dev sqlite driver stores the array serialized; substring
			// match is close enough outside postgres.
			qb = qb.Where("genre LIKE ?", "%"+genre+"%")
		}
	}
	if filter.Featured != nil {
		qb = qb.Where("is_featured = ?", *filter.Featured)
	}

	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Game
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
