package purchases

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
	"github.com/hyun090116/vortex-game-explorer/pkg/enums"
	"github.com/hyun090116/vortex-game-explorer/pkg/pagination"
)

// Repository wires purchase persistence helpers.
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

// CreateBatch inserts all purchase rows in one statement.
func (r *Repository) CreateBatch(ctx context.Context, rows []*models.Purchase) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// ListByUser returns one page of the user's purchase history, any status,
// newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Purchase, string, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx).
		Model(&models.Purchase{}).
		Where("user_id = ?", userID)
	if cursor != nil {
		qb = qb.Where("(purchased_at < ?) OR (purchased_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Purchase
	if err := qb.Order("purchased_at DESC").Order("id DESC").Limit(limitWithBuffer).Find(&rows).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.PurchasedAt, ID: last.ID})
	}
	return rows, nextCursor, nil
}

type libraryRecord struct {
	ID             uuid.UUID
	GameID         uuid.UUID
	OrderID        string
	PricePaid      int64
	PurchasedAt    time.Time
	GameTitle      sql.NullString
	GameSlug       sql.NullString
	GameCoverImage sql.NullString
	GameDeveloper  sql.NullString
}

// ListLibrary returns the user's completed purchases left-joined with the
// catalog. Placeholder game ids surface with null game columns.
func (r *Repository) ListLibrary(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]LibraryEntry, string, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx).
		Table("purchases p").
		Select("p.id, p.game_id, p.order_id, p.price_paid, p.purchased_at, " +
			"g.title AS game_title, g.slug AS game_slug, g.cover_image AS game_cover_image, g.developer AS game_developer").
		Joins("LEFT JOIN games g ON g.id = p.game_id").
		Where("p.user_id = ?", userID).
		Where("p.status = ?", enums.PurchaseStatusCompleted)
	if cursor != nil {
		qb = qb.Where("(p.purchased_at < ?) OR (p.purchased_at = ? AND p.id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var records []libraryRecord
	if err := qb.Order("p.purchased_at DESC").Order("p.id DESC").Limit(limitWithBuffer).Scan(&records).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(records) > pageSize {
		records = records[:pageSize]
		last := records[len(records)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.PurchasedAt, ID: last.ID})
	}

	entries := make([]LibraryEntry, 0, len(records))
	for _, record := range records {
		entry := LibraryEntry{
			PurchaseID:  record.ID,
			GameID:      record.GameID,
			OrderID:     record.OrderID,
			PricePaid:   record.PricePaid,
			PurchasedAt: record.PurchasedAt,
		}
		if record.GameSlug.Valid {
			entry.Game = &LibraryGame{
				Title:      record.GameTitle.String,
				Slug:       record.GameSlug.String,
				CoverImage: nullStringPtr(record.GameCoverImage),
				Developer:  nullStringPtr(record.GameDeveloper),
			}
		}
		entries = append(entries, entry)
	}
	return entries, nextCursor, nil
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
