package purchases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
	"github.com/hyun090116/vortex-game-explorer/pkg/enums"
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
	if err := conn.AutoMigrate(&models.Purchase{}, &models.Game{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepository(conn)
}

func seedCatalogGame(t *testing.T, repo *Repository, title, slug string) *models.Game {
	t.Helper()
	game := &models.Game{Title: title, Slug: slug, Price: 30000, Status: enums.GameStatusActive}
	if err := repo.db.Create(game).Error; err != nil {
		t.Fatalf("seed game: %v", err)
	}
	return game
}

func seedPurchase(t *testing.T, repo *Repository, userID, gameID uuid.UUID, status enums.PurchaseStatus, at time.Time) *models.Purchase {
	t.Helper()
	row := &models.Purchase{
		UserID:        userID,
		GameID:        gameID,
		OrderID:       fmt.Sprintf("VORTEX-%d-test", at.UnixMilli()),
		PaymentKey:    "pay_" + uuid.NewString()[:8],
		PricePaid:     30000,
		PaymentMethod: enums.PaymentMethodCard,
		TransactionID: "TXN-" + uuid.NewString()[:8],
		Status:        status,
		PurchasedAt:   at,
	}
	if err := repo.CreateBatch(context.Background(), []*models.Purchase{row}); err != nil {
		t.Fatalf("seed purchase: %v", err)
	}
	return row
}

func TestLibraryJoinsGamesAndSkipsPending(t *testing.T) {
	repo := newTestRepo(t)
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	userID := uuid.New()

	game := seedCatalogGame(t, repo, "Hollow Depths", "hollow-depths")
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	seedPurchase(t, repo, userID, game.ID, enums.PurchaseStatusCompleted, base)
	// Placeholder reference: no games row behind this id.
	seedPurchase(t, repo, userID, uuid.New(), enums.PurchaseStatusCompleted, base.Add(time.Hour))
	seedPurchase(t, repo, userID, game.ID, enums.PurchaseStatusPending, base.Add(2*time.Hour))

	result, err := svc.Library(context.Background(), userID, pagination.Params{})
	if err != nil {
		t.Fatalf("library failed: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 completed entries, got %d", len(result.Entries))
	}

	// Newest first: the placeholder row leads.
	if result.Entries[0].Game != nil {
		t.Fatalf("placeholder purchase must surface with nil game, got %+v", result.Entries[0].Game)
	}
	if result.Entries[1].Game == nil || result.Entries[1].Game.Slug != "hollow-depths" {
		t.Fatalf("expected joined game, got %+v", result.Entries[1].Game)
	}
}

func TestLibraryScopedToUser(t *testing.T) {
	repo := newTestRepo(t)
	svc, _ := NewService(repo)
	owner := uuid.New()
	other := uuid.New()

	game := seedCatalogGame(t, repo, "Hollow Depths", "hollow-depths")
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seedPurchase(t, repo, owner, game.ID, enums.PurchaseStatusCompleted, at)

	result, err := svc.Library(context.Background(), other, pagination.Params{})
	if err != nil {
		t.Fatalf("library failed: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Fatalf("expected empty library for other user, got %d", len(result.Entries))
	}
}

func TestHistoryIncludesAllStatusesWithCursor(t *testing.T) {
	repo := newTestRepo(t)
	svc, _ := NewService(repo)
	userID := uuid.New()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	statuses := []enums.PurchaseStatus{
		enums.PurchaseStatusCompleted,
		enums.PurchaseStatusPending,
		enums.PurchaseStatusRefunded,
	}
	for i, status := range statuses {
		seedPurchase(t, repo, userID, uuid.New(), status, base.Add(time.Duration(i)*time.Hour))
	}

	page1, err := svc.History(context.Background(), userID, pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("history page 1 failed: %v", err)
	}
	if len(page1.Purchases) != 2 || page1.NextCursor == "" {
		t.Fatalf("expected 2 rows + cursor, got %d cursor=%q", len(page1.Purchases), page1.NextCursor)
	}
	if page1.Purchases[0].Status != enums.PurchaseStatusRefunded {
		t.Fatalf("expected newest first, got %q", page1.Purchases[0].Status)
	}

	page2, err := svc.History(context.Background(), userID, pagination.Params{Limit: 2, Cursor: page1.NextCursor})
	if err != nil {
		t.Fatalf("history page 2 failed: %v", err)
	}
	if len(page2.Purchases) != 1 || page2.NextCursor != "" {
		t.Fatalf("unexpected second page: %d rows cursor=%q", len(page2.Purchases), page2.NextCursor)
	}
}
