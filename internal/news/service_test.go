package news

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
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
	if err := conn.AutoMigrate(&models.NewsItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepository(conn)
}

func seedItem(t *testing.T, repo *Repository, title string, publishedAt time.Time) *models.NewsItem {
	t.Helper()
	item := &models.NewsItem{
		Title:       title,
		Body:        "body of " + title,
		PublishedAt: publishedAt,
	}
	if err := repo.db.Create(item).Error; err != nil {
		t.Fatalf("seed news item %q: %v", title, err)
	}
	return item
}

func newFixedService(t *testing.T, repo *Repository, now time.Time) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.(*service).now = func() time.Time { return now }
	return svc
}

func TestListPublishedOnlyNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	seedItem(t, repo, "spring sale", now.Add(-48*time.Hour))
	seedItem(t, repo, "patch notes", now.Add(-time.Hour))
	seedItem(t, repo, "embargoed reveal", now.Add(24*time.Hour))

	svc := newFixedService(t, repo, now)
	result, err := svc.List(context.Background(), pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 published items, got %d", len(result.Items))
	}
	if result.Items[0].Title != "patch notes" || result.Items[1].Title != "spring sale" {
		t.Fatalf("unexpected order: %q, %q", result.Items[0].Title, result.Items[1].Title)
	}
	if result.NextCursor != "" {
		t.Fatalf("expected no cursor for a single page, got %q", result.NextCursor)
	}
}

func TestListCursorPagination(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	for i, title := range []string{"first", "second", "third"} {
		seedItem(t, repo, title, now.Add(-time.Duration(72-i)*time.Hour))
	}

	svc := newFixedService(t, repo, now)
	page1, err := svc.List(context.Background(), pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("page 1 failed: %v", err)
	}
	if len(page1.Items) != 2 || page1.NextCursor == "" {
		t.Fatalf("expected 2 items + cursor, got %d cursor=%q", len(page1.Items), page1.NextCursor)
	}
	if page1.Items[0].Title != "third" {
		t.Fatalf("expected newest first, got %q", page1.Items[0].Title)
	}

	page2, err := svc.List(context.Background(), pagination.Params{Limit: 2, Cursor: page1.NextCursor})
	if err != nil {
		t.Fatalf("page 2 failed: %v", err)
	}
	if len(page2.Items) != 1 || page2.Items[0].Title != "first" {
		t.Fatalf("unexpected page 2: %+v", page2.Items)
	}
}

func TestGetByID(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	summary := "tl;dr"
	published := seedItem(t, repo, "patch notes", now.Add(-time.Hour))
	published.Summary = &summary
	if err := repo.db.Save(published).Error; err != nil {
		t.Fatalf("update seed: %v", err)
	}
	scheduled := seedItem(t, repo, "embargoed reveal", now.Add(24*time.Hour))

	svc := newFixedService(t, repo, now)
	item, err := svc.GetByID(context.Background(), published.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if item.Title != "patch notes" || item.Summary == nil || *item.Summary != "tl;dr" {
		t.Fatalf("unexpected item: %+v", item)
	}

	_, err = svc.GetByID(context.Background(), scheduled.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for scheduled item, got %v", err)
	}
}
