package outbox

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
	"github.com/hyun090116/vortex-game-explorer/pkg/enums"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes an event inside the caller's transaction so it commits or
// rolls back together with the state change it describes.
func (r *Repository) Insert(tx *gorm.DB, event models.OutboxEvent) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	return tx.Create(&event).Error
}

func (r *Repository) FetchPending(limit int) ([]models.OutboxEvent, error) {
	var rows []models.OutboxEvent
	err := r.db.Where("status = ?", enums.OutboxStatusPending).
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *Repository) MarkPublished(id uuid.UUID) error {
	return r.db.Model(&models.OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       enums.OutboxStatusPublished,
			"published_at": time.Now(),
		}).Error
}

// MarkFailed records a publish attempt. Once maxAttempts is exhausted the row
// moves to failed and the publisher stops picking it up.
func (r *Repository) MarkFailed(id uuid.UUID, cause error, maxAttempts int) error {
	msg := cause.Error()
	updates := map[string]any{
		"last_error":    msg,
		"attempt_count": gorm.Expr("attempt_count + 1"),
	}
	if err := r.db.Model(&models.OutboxEvent{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return err
	}
	if maxAttempts > 0 {
		return r.db.Model(&models.OutboxEvent{}).
			Where("id = ? AND attempt_count >= ?", id, maxAttempts).
			Update("status", enums.OutboxStatusFailed).Error
	}
	return nil
}
