package purchases

import (
	"time"

	"github.com/google/uuid"

	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
	"github.com/hyun090116/vortex-game-explorer/pkg/enums"
)

// PurchaseDTO is one settled order line as returned by the history endpoint.
type PurchaseDTO struct {
	ID            uuid.UUID            `json:"id"`
	GameID        uuid.UUID            `json:"game_id"`
	OrderID       string               `json:"order_id"`
	PricePaid     int64                `json:"price_paid"`
	PaymentMethod enums.PaymentMethod  `json:"payment_method"`
	TransactionID string               `json:"transaction_id"`
	Status        enums.PurchaseStatus `json:"status"`
	PurchasedAt   time.Time            `json:"purchased_at"`
}

// LibraryGame carries the catalog fields joined onto a library row. It is nil
// when the purchase references a placeholder id with no games row behind it.
type LibraryGame struct {
	Title      string  `json:"title"`
	Slug       string  `json:"slug"`
	CoverImage *string `json:"cover_image,omitempty"`
	Developer  *string `json:"developer,omitempty"`
}

// LibraryEntry is one owned game in the user's library.
type LibraryEntry struct {
	PurchaseID  uuid.UUID    `json:"purchase_id"`
	GameID      uuid.UUID    `json:"game_id"`
	OrderID     string       `json:"order_id"`
	PricePaid   int64        `json:"price_paid"`
	PurchasedAt time.Time    `json:"purchased_at"`
	Game        *LibraryGame `json:"game"`
}

// LibraryResult is one library page plus the cursor for the next one.
type LibraryResult struct {
	Entries    []LibraryEntry `json:"entries"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// HistoryResult is one purchase-history page.
type HistoryResult struct {
	Purchases  []PurchaseDTO `json:"purchases"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

func FromModel(p *models.Purchase) *PurchaseDTO {
	if p == nil {
		return nil
	}

	return &PurchaseDTO{
		ID:            p.ID,
		GameID:        p.GameID,
		OrderID:       p.OrderID,
		PricePaid:     p.PricePaid,
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		Status:        p.Status,
		PurchasedAt:   p.PurchasedAt,
	}
}
