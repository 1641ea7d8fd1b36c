package games

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
	"github.com/hyun090116/vortex-game-explorer/pkg/enums"
	pkgerrors "github.com/hyun090116/vortex-game-explorer/pkg/errors"
	"github.com/hyun090116/vortex-game-explorer/pkg/pagination"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := conn.AutoMigrate(&models.Game{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepository(conn)
}

func seedGame(t *testing.T, repo *Repository, game models.Game) *models.Game {
	t.Helper()
	if game.Status == "" {
		game.Status = enums.GameStatusActive
	}
	if game.Slug == "" {
		game.Slug = Slugify(game.Title)
	}
	created, err := repo.Create(context.Background(), &game)
	if err != nil {
		t.Fatalf("seed game %q: %v", game.Title, err)
	}
	return created
}

func TestListActiveOnly(t *testing.T) {
	repo := newTestRepo(t)
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	seedGame(t, repo, models.Game{Title: "Hollow Depths", Price: 32000})
	seedGame(t, repo, models.Game{Title: "Retired Classic", Price: 9000, Status: enums.GameStatusHidden})

	result, err := svc.List(context.Background(), ListGamesInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(result.Games) != 1 {
		t.Fatalf("expected only the active game, got %d rows", len(result.Games))
	}
	if result.Games[0].Title != "Hollow Depths" {
		t.Fatalf("unexpected game: %q", result.Games[0].Title)
	}
}

func TestListFilters(t *testing.T) {
	repo := newTestRepo(t)
	svc, _ := NewService(repo)

	dev := "Nebula Works"
	seedGame(t, repo, models.Game{
		Title:      "Starfall Tactics",
		Developer:  &dev,
		Price:      54000,
		Genre:      pq.StringArray{"strategy", "scifi"},
		IsFeatured: true,
	})
	seedGame(t, repo, models.Game{
		Title: "Mire",
		Price: 18000,
		Genre: pq.StringArray{"horror"},
	})

	byQuery, err := svc.List(context.Background(), ListGamesInput{
		Filters: ListFilters{Query: "nebula"},
	})
	if err != nil {
		t.Fatalf("query filter failed: %v", err)
	}
	if len(byQuery.Games) != 1 || byQuery.Games[0].Title != "Starfall Tactics" {
		t.Fatalf("developer search missed: %+v", byQuery.Games)
	}

	featured := true
	byFeatured, err := svc.List(context.Background(), ListGamesInput{
		Filters: ListFilters{Featured: &featured},
	})
	if err != nil {
		t.Fatalf("featured filter failed: %v", err)
	}
	if len(byFeatured.Games) != 1 || !byFeatured.Games[0].IsFeatured {
		t.Fatalf("featured filter missed: %+v", byFeatured.Games)
	}

	byGenre, err := svc.List(context.Background(), ListGamesInput{
		Filters: ListFilters{Genre: "horror"},
	})
	if err != nil {
		t.Fatalf("genre filter failed: %v", err)
	}
	if len(byGenre.Games) != 1 || byGenre.Games[0].Title != "Mire" {
		t.Fatalf("genre filter missed: %+v", byGenre.Games)
	}
}

func TestListCursorPagination(t *testing.T) {
	repo := newTestRepo(t)
	svc, _ := NewService(repo)

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	titles := []string{"First Light", "Second Wind", "Third Eye"}
	for i, title := range titles {
		game := models.Game{Title: title, Price: 10000}
		game.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		seedGame(t, repo, game)
	}

	page1, err := svc.List(context.Background(), ListGamesInput{
		Pagination: pagination.Params{Limit: 2},
	})
	if err != nil {
		t.Fatalf("page 1 failed: %v", err)
	}
	if len(page1.Games) != 2 || page1.NextCursor == "" {
		t.Fatalf("expected full first page with cursor, got %d rows cursor=%q", len(page1.Games), page1.NextCursor)
	}
	if page1.Games[0].Title != "Third Eye" {
		t.Fatalf("expected newest first, got %q", page1.Games[0].Title)
	}

	page2, err := svc.List(context.Background(), ListGamesInput{
		Pagination: pagination.Params{Limit: 2, Cursor: page1.NextCursor},
	})
	if err != nil {
		t.Fatalf("page 2 failed: %v", err)
	}
	if len(page2.Games) != 1 || page2.Games[0].Title != "First Light" {
		t.Fatalf("unexpected second page: %+v", page2.Games)
	}
	if page2.NextCursor != "" {
		t.Fatalf("expected exhausted cursor, got %q", page2.NextCursor)
	}
}

func TestGetBySlug(t *testing.T) {
	repo := newTestRepo(t)
	svc, _ := NewService(repo)

	seedGame(t, repo, models.Game{Title: "Hollow Depths", Price: 32000, DiscountPercent: 25})
	seedGame(t, repo, models.Game{Title: "Vaulted", Price: 9000, Status: enums.GameStatusHidden})

	game, err := svc.GetBySlug(context.Background(), "hollow-depths")
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if game.DiscountedPrice != 24000 {
		t.Fatalf("expected discounted price 24000, got %d", game.DiscountedPrice)
	}

	_, err = svc.GetBySlug(context.Background(), "vaulted")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("hidden game must read as missing, got %v", err)
	}

	_, err = svc.GetBySlug(context.Background(), "never-shipped")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
