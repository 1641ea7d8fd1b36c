package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	gamesvc "github.com/hyun090116/vortex-game-explorer/internal/games"
	pkgerrors "github.com/hyun090116/vortex-game-explorer/pkg/errors"
)

func TestGamesListParsesFilters(t *testing.T) {
	svc := &stubGamesService{list: &gamesvc.ListResult{Games: []gamesvc.GameDTO{}}}
	handler := GamesList(svc, nil)

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/games?q=hollow&genre=roguelike&featured=true&limit=5", nil)
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastInput.Filters.Query != "hollow" || svc.lastInput.Filters.Genre != "roguelike" {
		t.Fatalf("filters not forwarded: %+v", svc.lastInput.Filters)
	}
	if svc.lastInput.Filters.Featured == nil || !*svc.lastInput.Filters.Featured {
		t.Fatalf("featured flag not forwarded: %+v", svc.lastInput.Filters.Featured)
	}
	if svc.lastInput.Pagination.Limit != 5 {
		t.Fatalf("limit not forwarded: %d", svc.lastInput.Pagination.Limit)
	}
}

func TestGamesListRejectsBadFeaturedFlag(t *testing.T) {
	handler := GamesList(&stubGamesService{}, nil)

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/games?featured=maybe", nil)
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGameDetailReturnsGame(t *testing.T) {
	svc := &stubGamesService{game: &gamesvc.GameDTO{ID: uuid.New(), Slug: "hollow-depths", Title: "Hollow Depths"}}
	router := chi.NewRouter()
	router.Get("/api/v1/games/{slug}", GameDetail(svc, nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/games/hollow-depths", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data gamesvc.GameDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Slug != "hollow-depths" {
		t.Fatalf("unexpected game: %+v", envelope.Data)
	}
}

func TestGameDetailHiddenGame(t *testing.T) {
	svc := &stubGamesService{err: pkgerrors.New(pkgerrors.CodeNotFound, "game not found")}
	router := chi.NewRouter()
	router.Get("/api/v1/games/{slug}", GameDetail(svc, nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/games/unlisted-title", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
