package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hyun090116/vortex-game-explorer/internal/cart"
	"github.com/hyun090116/vortex-game-explorer/internal/games"
	"github.com/hyun090116/vortex-game-explorer/internal/purchases"
	"github.com/hyun090116/vortex-game-explorer/pkg/config"
	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
	"github.com/hyun090116/vortex-game-explorer/pkg/enums"
	pkgerrors "github.com/hyun090116/vortex-game-explorer/pkg/errors"
	"github.com/hyun090116/vortex-game-explorer/pkg/logger"
	"github.com/hyun090116/vortex-game-explorer/pkg/outbox"
	"github.com/hyun090116/vortex-game-explorer/pkg/toss"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartAccessor interface {
	Items(ctx context.Context, userID uuid.UUID) ([]cart.Item, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type checkoutStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	PendingOrderKey(userID string) string
	CheckoutLockKey(userID string) string
	OrderDoneKey(orderID string) string
}

type gameMaterializer interface {
	EnsureGame(ctx context.Context, tx *gorm.DB, d games.Descriptor) uuid.UUID
}

type customerResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service executes the two-phase checkout: hand-off to the payment widget and
// server-side confirmation of the redirect.
type Service interface {
	Initiate(ctx context.Context, userID uuid.UUID) (*InitiateResult, error)
	Confirm(ctx context.Context, userID uuid.UUID, req ConfirmRequest) (*ConfirmResult, error)
}

type service struct {
	tx           txRunner
	cart         cartAccessor
	store        checkoutStore
	confirmer    toss.Confirmer
	materializer gameMaterializer
	outbox       outboxPublisher
	customers    customerResolver
	logg         *logger.Logger

	clientKey string
	topic     string
	cfg       config.CheckoutConfig
}

// ServiceParams bundles the checkout service dependencies.
type ServiceParams struct {
	TxRunner     txRunner
	Cart         cartAccessor
	Store        checkoutStore
	Confirmer    toss.Confirmer
	Materializer gameMaterializer
	Outbox       outboxPublisher
	Customers    customerResolver
	Logger       *logger.Logger

	TossClientKey  string
	PurchasesTopic string
	Checkout       config.CheckoutConfig
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.TxRunner == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.Cart == nil {
		return nil, fmt.Errorf("cart accessor required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("checkout store required")
	}
	if params.Confirmer == nil {
		return nil, fmt.Errorf("payment confirmer required")
	}
	if params.Materializer == nil {
		return nil, fmt.Errorf("game materializer required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if params.TossClientKey == "" {
		return nil, fmt.Errorf("toss client key required")
	}
	return &service{
		tx:           params.TxRunner,
		cart:         params.Cart,
		store:        params.Store,
		confirmer:    params.Confirmer,
		materializer: params.Materializer,
		outbox:       params.Outbox,
		customers:    params.Customers,
		logg:         params.Logger,
		clientKey:    params.TossClientKey,
		topic:        params.PurchasesTopic,
		cfg:          params.Checkout,
	}, nil
}

// Initiate freezes the cart into a pending-order snapshot and returns the
// widget parameters. Precondition failures return outcomes, leave the cart
// untouched, and never expose provider parameters.
func (s *service) Initiate(ctx context.Context, userID uuid.UUID) (*InitiateResult, error) {
	items, err := s.cart.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return &InitiateResult{Outcome: OutcomeEmptyCart}, nil
	}

	// A zero or negative total means corrupt cart state; abort quietly rather
	// than hand the widget an unpayable order.
	if totalAmount(items) <= 0 {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithUserID(ctx, userID.String()), "checkout aborted on non-positive total")
		}
		return &InitiateResult{Outcome: OutcomeEmptyCart}, nil
	}

	lockKey := s.store.CheckoutLockKey(userID.String())
	acquired, err := s.store.SetNX(ctx, lockKey, "1", s.cfg.LockTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire checkout lock")
	}
	if !acquired {
		return &InitiateResult{Outcome: OutcomeInProgress}, nil
	}

	now := time.Now().UTC()
	orderID := NewOrderID(now)
	snapshot := PendingOrder{
		OrderID:   orderID,
		OrderName: BuildOrderName(items),
		Amount:    totalAmount(items),
		Items:     items,
		CreatedAt: now,
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		s.releaseKeys(ctx, lockKey)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode pending order")
	}
	// The snapshot must be durable before the widget opens: the confirmation
	// reconciles against it even if the cart mutates in the meantime.
	if err := s.store.Set(ctx, s.store.PendingOrderKey(userID.String()), payload, s.cfg.PendingOrderTTL); err != nil {
		s.releaseKeys(ctx, lockKey)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store pending order")
	}

	if s.logg != nil {
		logCtx := s.logg.WithOrderID(ctx, orderID)
		s.logg.Info(logCtx, "checkout initiated")
	}

	payment := &WidgetParams{
		ClientKey:  s.clientKey,
		OrderID:    orderID,
		OrderName:  snapshot.OrderName,
		Amount:     snapshot.Amount,
		Currency:   "KRW",
		SuccessURL: s.cfg.SuccessURL(),
		FailURL:    s.cfg.FailURL(),
	}
	// Customer fields are best effort; the widget works without them.
	if s.customers != nil {
		if user, err := s.customers.FindByID(ctx, userID); err == nil && user != nil {
			payment.CustomerEmail = user.Email
			payment.CustomerName = user.Name
		}
	}

	return &InitiateResult{
		Outcome: OutcomeReady,
		Payment: payment,
	}, nil
}

// Confirm reconciles the provider redirect against the frozen snapshot and
// settles the order exactly once.
func (s *service) Confirm(ctx context.Context, userID uuid.UUID, req ConfirmRequest) (*ConfirmResult, error) {
	if req.PaymentKey == "" || req.OrderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "paymentKey and orderId are required")
	}
	if req.Amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if s.logg != nil {
		ctx = s.logg.WithOrderID(ctx, req.OrderID)
	}

	// One-shot latch keyed by order id: duplicate redirects (re-renders,
	// double clicks) land here and stop.
	latchKey := s.store.OrderDoneKey(req.OrderID)
	first, err := s.store.SetNX(ctx, latchKey, "1", s.cfg.ConfirmedOrderTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire confirmation latch")
	}
	if !first {
		return &ConfirmResult{Outcome: OutcomeAlreadyConfirmed, OrderID: req.OrderID}, nil
	}

	snapshot, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		s.releaseKeys(ctx, latchKey)
		return nil, err
	}
	if snapshot.OrderID != req.OrderID {
		s.releaseKeys(ctx, latchKey)
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order does not match the pending checkout")
	}
	if snapshot.Amount != req.Amount {
		s.releaseKeys(ctx, latchKey)
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "amount does not match the pending checkout")
	}

	payment, err := s.confirmer.ConfirmPayment(ctx, toss.ConfirmRequest{
		PaymentKey: req.PaymentKey,
		OrderID:    req.OrderID,
		Amount:     req.Amount,
	})
	if err != nil {
		// The cart and snapshot survive so the user can retry.
		s.releaseKeys(ctx, latchKey)
		if s.logg != nil {
			s.logg.Error(ctx, "payment confirmation rejected", err)
		}
		return nil, err
	}

	purchasedAt := time.Now().UTC()
	if !payment.ApprovedAt.IsZero() {
		purchasedAt = payment.ApprovedAt.UTC()
	}

	count, err := s.materialize(ctx, userID, snapshot, req.PaymentKey, purchasedAt)
	if err != nil {
		// The provider has already captured the money at this point. Releasing
		// the latch lets the user retry confirmation; Toss treats a repeat
		// confirm of an approved paymentKey with the same orderId and amount
		// as idempotent, so the retry settles without a double charge.
		s.releaseKeys(ctx, latchKey)
		if s.logg != nil {
			logCtx := s.logg.WithFields(ctx, map[string]any{"payment_key": req.PaymentKey})
			s.logg.Error(logCtx, "payment captured but settlement failed", err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "payment captured but settlement failed")
	}

	// Post-settlement cleanup is best effort; keys expire on their own.
	if err := s.cart.Clear(ctx, userID); err != nil && s.logg != nil {
		s.logg.Error(ctx, "clearing cart after settlement", err)
	}
	s.releaseKeys(ctx,
		s.store.PendingOrderKey(userID.String()),
		s.store.CheckoutLockKey(userID.String()),
	)

	if s.logg != nil {
		s.logg.Info(ctx, "checkout confirmed")
	}

	return &ConfirmResult{
		Outcome:       OutcomeConfirmed,
		OrderID:       snapshot.OrderID,
		OrderName:     snapshot.OrderName,
		Amount:        snapshot.Amount,
		PurchaseCount: count,
	}, nil
}

func (s *service) loadSnapshot(ctx context.Context, userID uuid.UUID) (*PendingOrder, error) {
	raw, err := s.store.Get(ctx, s.store.PendingOrderKey(userID.String()))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no pending checkout for this user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read pending order")
	}
	var snapshot PendingOrder
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode pending order")
	}
	return &snapshot, nil
}

func (s *service) materialize(ctx context.Context, userID uuid.UUID, snapshot *PendingOrder, paymentKey string, purchasedAt time.Time) (int, error) {
	count := 0
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		rows := make([]*models.Purchase, 0, len(snapshot.Items))
		for i, item := range snapshot.Items {
			// Resolution goes through the title, not the snapshot id: the
			// catalog row may have been created, merged, or removed since the
			// item was added.
			gameID := s.materializer.EnsureGame(ctx, tx, games.Descriptor{
				Title:       item.Title,
				Developer:   item.Developer,
				Description: item.Description,
				Price:       item.Price,
				CoverImage:  item.CoverImage,
				Genre:       item.Genre,
				Rating:      item.Rating,
				ReleaseDate: item.ReleaseDate,
			})
			rows = append(rows, &models.Purchase{
				UserID:        userID,
				GameID:        gameID,
				OrderID:       snapshot.OrderID,
				PaymentKey:    paymentKey,
				PricePaid:     item.UnitPrice(),
				PaymentMethod: enums.PaymentMethodCard,
				TransactionID: NewTransactionID(purchasedAt, i),
				Status:        enums.PurchaseStatusCompleted,
				PurchasedAt:   purchasedAt,
			})
		}

		repo := purchases.NewRepository(tx)
		if err := repo.CreateBatch(ctx, rows); err != nil {
			return err
		}

		for _, row := range rows {
			event := outbox.DomainEvent{
				Topic:         s.topic,
				EventType:     enums.EventPurchaseCompleted,
				AggregateType: enums.AggregatePurchase,
				AggregateID:   row.ID,
				Actor:         &outbox.ActorRef{UserID: userID},
				Data: map[string]any{
					"order_id":       row.OrderID,
					"game_id":        row.GameID.String(),
					"price_paid":     row.PricePaid,
					"transaction_id": row.TransactionID,
				},
				OccurredAt: purchasedAt,
			}
			if err := s.outbox.Emit(ctx, tx, event); err != nil {
				return err
			}
		}
		count = len(rows)
		return nil
	})
	return count, err
}

func (s *service) releaseKeys(ctx context.Context, keys ...string) {
	if err := s.store.Del(ctx, keys...); err != nil && s.logg != nil {
		s.logg.Error(ctx, "releasing checkout keys", err)
	}
}

func totalAmount(items []cart.Item) int64 {
	total := int64(0)
	for _, item := range items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		total += item.UnitPrice() * int64(qty)
	}
	return total
}
