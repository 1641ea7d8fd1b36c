package news

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/hyun090116/vortex-game-explorer/pkg/errors"
	"github.com/hyun090116/vortex-game-explorer/pkg/pagination"
)

// Service exposes the storefront news feed.
type Service interface {
	List(ctx context.Context, params pagination.Params) (*ListResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*NewsItemDTO, error)
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService wires the news service dependencies.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "news repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*ListResult, error) {
	rows, nextCursor, err := s.repo.ListPublished(ctx, s.now().UTC(), params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list news")
	}

	items := make([]NewsItemDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	return &ListResult{Items: items, NextCursor: nextCursor}, nil
}

// GetByID returns a published item. Scheduled items stay invisible until
// their publish time, indistinguishable from a missing id.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*NewsItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "news item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load news item")
	}
	if item.PublishedAt.After(s.now().UTC()) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "news item not found")
	}
	return FromModel(item), nil
}
