package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyun090116/vortex-game-explorer/pkg/enums"
)

// Purchase records one line of a settled order. GameID is intentionally not a
// foreign key: when catalog materialization fails the row still lands, carrying
// a placeholder id with no games row behind it.
type Purchase struct {
	ID            uuid.UUID            `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index:idx_purchases_user_status"`
	GameID        uuid.UUID            `gorm:"column:game_id;type:uuid;not null"`
	OrderID       string               `gorm:"column:order_id;type:text;not null;index"`
	PaymentKey    string               `gorm:"column:payment_key;type:text;not null"`
	PricePaid     int64                `gorm:"column:price_paid;not null"`
	PaymentMethod enums.PaymentMethod  `gorm:"column:payment_method;type:text;not null"`
	TransactionID string               `gorm:"column:transaction_id;type:text;not null"`
	Status        enums.PurchaseStatus `gorm:"column:status;type:text;not null;index:idx_purchases_user_status"`
	PurchasedAt   time.Time            `gorm:"column:purchased_at;not null"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Purchase) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
