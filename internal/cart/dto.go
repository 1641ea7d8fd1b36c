package cart

import (
	"time"

	"github.com/google/uuid"
)

// Outcome labels the result of a cart mutation. Preconditions that change
// nothing are reported as outcomes, not errors.
type Outcome string

const (
	OutcomeAdded         Outcome = "added"
	OutcomeAlreadyInCart Outcome = "already_in_cart"
	OutcomeRemoved       Outcome = "removed"
	OutcomeNotInCart     Outcome = "not_in_cart"
	OutcomeUpdated       Outcome = "updated"
)

// Item is one cart line. The full purchasable field set is snapshotted at add
// time: the checkout total matches what the user saw, and the materializer can
// rebuild a catalog row from the line alone if the game vanishes before
// confirmation.
type Item struct {
	GameID          uuid.UUID  `json:"game_id"`
	Title           string     `json:"title"`
	Developer       *string    `json:"developer,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Price           int64      `json:"price"`
	DiscountPercent int        `json:"discount_percent"`
	CoverImage      *string    `json:"cover_image,omitempty"`
	Genre           []string   `json:"genre,omitempty"`
	Rating          float64    `json:"rating,omitempty"`
	ReleaseDate     *time.Time `json:"release_date,omitempty"`
	Quantity        int        `json:"quantity"`
	AddedAt         time.Time  `json:"added_at"`
}

// UnitPrice returns the effective per-copy price after discount.
func (i Item) UnitPrice() int64 {
	if i.DiscountPercent <= 0 {
		return i.Price
	}
	if i.DiscountPercent >= 100 {
		return 0
	}
	return i.Price * int64(100-i.DiscountPercent) / 100
}

// Cart is the full per-user cart with derived totals.
type Cart struct {
	Items      []Item `json:"items"`
	ItemCount  int    `json:"item_count"`
	TotalPrice int64  `json:"total_price"`
}

// MutationResult reports a cart write alongside the resulting cart state.
type MutationResult struct {
	Outcome Outcome `json:"outcome"`
	Cart    *Cart   `json:"cart"`
}

func buildCart(items []Item) *Cart {
	total := int64(0)
	count := 0
	for _, item := range items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		total += item.UnitPrice() * int64(qty)
		count += qty
	}
	if items == nil {
		items = []Item{}
	}
	return &Cart{
		Items:      items,
		ItemCount:  count,
		TotalPrice: total,
	}
}
