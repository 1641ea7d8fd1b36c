package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/hyun090116/vortex-game-explorer/internal/games"
	"github.com/hyun090116/vortex-game-explorer/pkg/config"
	pkgerrors "github.com/hyun090116/vortex-game-explorer/pkg/errors"
)

type cartStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(userID string) string
}

// Service is the Redis-backed per-user cart. One copy per title; quantity is
// fixed at 1 and stacking is rejected.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Add(ctx context.Context, userID uuid.UUID, game games.GameDTO) (*MutationResult, error)
	Remove(ctx context.Context, userID, gameID uuid.UUID) (*MutationResult, error)
	SetQuantity(ctx context.Context, userID, gameID uuid.UUID, quantity int) (*MutationResult, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	Items(ctx context.Context, userID uuid.UUID) ([]Item, error)
}

type service struct {
	store cartStore
	ttl   time.Duration
}

// NewService wires the cart service against the shared Redis client.
func NewService(store cartStore, cfg config.CartConfig) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart store required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart ttl must be positive")
	}
	return &service{store: store, ttl: ttl}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	items, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildCart(items), nil
}

// Items returns the raw cart lines; a missing key reads as an empty cart.
func (s *service) Items(ctx context.Context, userID uuid.UUID) ([]Item, error) {
	raw, err := s.store.Get(ctx, s.store.CartKey(userID.String()))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read cart")
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart")
	}
	return items, nil
}

// Add appends the game with quantity 1. Adding a title already present leaves
// the cart untouched and reports it.
func (s *service) Add(ctx context.Context, userID uuid.UUID, game games.GameDTO) (*MutationResult, error) {
	if game.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "game id is required")
	}

	items, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if item.GameID == game.ID {
			return &MutationResult{Outcome: OutcomeAlreadyInCart, Cart: buildCart(items)}, nil
		}
	}

	items = append(items, Item{
		GameID:          game.ID,
		Title:           game.Title,
		Developer:       game.Developer,
		Description:     game.Description,
		Price:           game.Price,
		DiscountPercent: game.DiscountPercent,
		CoverImage:      game.CoverImage,
		Genre:           game.Genre,
		Rating:          game.Rating,
		ReleaseDate:     game.ReleaseDate,
		Quantity:        1,
		AddedAt:         time.Now().UTC(),
	})
	if err := s.persist(ctx, userID, items); err != nil {
		return nil, err
	}
	return &MutationResult{Outcome: OutcomeAdded, Cart: buildCart(items)}, nil
}

// Remove deletes the line if present; removing an absent title is not an error.
func (s *service) Remove(ctx context.Context, userID, gameID uuid.UUID) (*MutationResult, error) {
	items, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	found := false
	for _, item := range items {
		if item.GameID == gameID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return &MutationResult{Outcome: OutcomeNotInCart, Cart: buildCart(items)}, nil
	}

	if err := s.persist(ctx, userID, kept); err != nil {
		return nil, err
	}
	return &MutationResult{Outcome: OutcomeRemoved, Cart: buildCart(kept)}, nil
}

// SetQuantity only supports removal (n <= 0) and keeping the single copy
// (n == 1). Games are non-stackable.
func (s *service) SetQuantity(ctx context.Context, userID, gameID uuid.UUID, quantity int) (*MutationResult, error) {
	if quantity <= 0 {
		return s.Remove(ctx, userID, gameID)
	}
	if quantity > 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "games are limited to one copy per cart")
	}

	items, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.GameID == gameID {
			return &MutationResult{Outcome: OutcomeUpdated, Cart: buildCart(items)}, nil
		}
	}
	return &MutationResult{Outcome: OutcomeNotInCart, Cart: buildCart(items)}, nil
}

// Clear drops the whole cart key.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.Del(ctx, s.store.CartKey(userID.String())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) persist(ctx context.Context, userID uuid.UUID, items []Item) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.store.Set(ctx, s.store.CartKey(userID.String()), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write cart")
	}
	return nil
}
