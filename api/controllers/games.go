package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hyun090116/vortex-game-explorer/api/responses"
	"github.com/hyun090116/vortex-game-explorer/api/validators"
	gamesvc "github.com/hyun090116/vortex-game-explorer/internal/games"
	pkgerrors "github.com/hyun090116/vortex-game-explorer/pkg/errors"
	"github.com/hyun090116/vortex-game-explorer/pkg/logger"
)

// GamesList serves the browsable catalog with filters and cursor paging.
func GamesList(svc gamesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "games service unavailable"))
			return
		}

		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		featured, err := validators.ParseQueryBool(r, "featured")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), gamesvc.ListGamesInput{
			Filters: gamesvc.ListFilters{
				Query:    strings.TrimSpace(r.URL.Query().Get("q")),
				Genre:    strings.TrimSpace(r.URL.Query().Get("genre")),
				Featured: featured,
			},
			Pagination: params,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GameDetail serves a single catalog page by slug.
func GameDetail(svc gamesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "games service unavailable"))
			return
		}

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "slug is required"))
			return
		}

		game, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, game)
	}
}
