package games

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyun090116/vortex-game-explorer/pkg/enums"
	pkgerrors "github.com/hyun090116/vortex-game-explorer/pkg/errors"
)

// Service exposes the public catalog read operations.
type Service interface {
	List(ctx context.Context, input ListGamesInput) (*ListResult, error)
	GetBySlug(ctx context.Context, slug string) (*GameDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*GameDTO, error)
}

type service struct {
	repo *Repository
}

// NewService wires the catalog service dependencies.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "games repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, input ListGamesInput) (*ListResult, error) {
	rows, nextCursor, err := s.repo.ListActive(ctx, gameListQuery{
		Pagination: input.Pagination,
		Filters:    input.Filters,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list games")
	}

	dtos := make([]GameDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return &ListResult{Games: dtos, NextCursor: nextCursor}, nil
}

// GetBySlug resolves a catalog detail page. Hidden games are indistinguishable
// from missing ones.
func (s *service) GetBySlug(ctx context.Context, slug string) (*GameDTO, error) {
	game, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "game not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load game")
	}
	if game.Status != enums.GameStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "game not found")
	}
	return FromModel(game), nil
}

// GetByID resolves an active game, with the same hidden/missing collapse as
// GetBySlug.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*GameDTO, error) {
	game, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "game not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load game")
	}
	if game.Status != enums.GameStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "game not found")
	}
	return FromModel(game), nil
}
