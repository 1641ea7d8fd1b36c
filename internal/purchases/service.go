package purchases

import (
	"context"

	"github.com/google/uuid"

	pkgerrors "github.com/hyun090116/vortex-game-explorer/pkg/errors"
	"github.com/hyun090116/vortex-game-explorer/pkg/pagination"
)

// Service exposes the library and purchase-history reads.
type Service interface {
	Library(ctx context.Context, userID uuid.UUID, params pagination.Params) (*LibraryResult, error)
	History(ctx context.Context, userID uuid.UUID, params pagination.Params) (*HistoryResult, error)
}

type service struct {
	repo *Repository
}

// NewService wires the purchases service dependencies.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "purchases repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Library(ctx context.Context, userID uuid.UUID, params pagination.Params) (*LibraryResult, error) {
	entries, nextCursor, err := s.repo.ListLibrary(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list library")
	}
	if entries == nil {
		entries = []LibraryEntry{}
	}
	return &LibraryResult{Entries: entries, NextCursor: nextCursor}, nil
}

func (s *service) History(ctx context.Context, userID uuid.UUID, params pagination.Params) (*HistoryResult, error) {
	rows, nextCursor, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list purchases")
	}

	dtos := make([]PurchaseDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return &HistoryResult{Purchases: dtos, NextCursor: nextCursor}, nil
}
