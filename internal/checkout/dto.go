package checkout

import (
	"time"

	"github.com/hyun090116/vortex-game-explorer/internal/cart"
)

// Outcome labels checkout results that are not errors. Precondition failures
// render as 200 responses carrying the outcome, never as error envelopes.
type Outcome string

const (
	OutcomeReady            Outcome = "ready"
	OutcomeEmptyCart        Outcome = "empty_cart"
	OutcomeInProgress       Outcome = "checkout_in_progress"
	OutcomeConfirmed        Outcome = "confirmed"
	OutcomeAlreadyConfirmed Outcome = "already_confirmed"
)

// WidgetParams is everything the storefront needs to open the payment widget.
type WidgetParams struct {
	ClientKey     string `json:"clientKey"`
	OrderID       string `json:"orderId"`
	OrderName     string `json:"orderName"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	SuccessURL    string `json:"successUrl"`
	FailURL       string `json:"failUrl"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	CustomerName  string `json:"customerName,omitempty"`
}

// InitiateResult reports the hand-off. Payment is nil unless Outcome is ready.
type InitiateResult struct {
	Outcome Outcome       `json:"outcome"`
	Payment *WidgetParams `json:"payment,omitempty"`
}

// ConfirmRequest carries the provider redirect parameters back to the server.
type ConfirmRequest struct {
	PaymentKey string `json:"paymentKey" validate:"required"`
	OrderID    string `json:"orderId" validate:"required"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
}

// ConfirmResult reports a settled (or already settled) order.
type ConfirmResult struct {
	Outcome       Outcome `json:"outcome"`
	OrderID       string  `json:"orderId"`
	OrderName     string  `json:"orderName,omitempty"`
	Amount        int64   `json:"amount,omitempty"`
	PurchaseCount int     `json:"purchase_count,omitempty"`
}

// PendingOrder is the snapshot frozen before the widget hand-off. The
// confirmation reconciles against it, not against the live cart.
type PendingOrder struct {
	OrderID   string      `json:"order_id"`
	OrderName string      `json:"order_name"`
	Amount    int64       `json:"amount"`
	Items     []cart.Item `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}
