package outbox

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
	"github.com/hyun090116/vortex-game-explorer/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	if err := conn.AutoMigrate(&models.OutboxEvent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestEmitWritesPendingRowWithEnvelope(t *testing.T) {
	conn := newTestDB(t)
	svc := NewService(NewRepository(conn), nil)

	aggregateID := uuid.New()
	tx := conn.Begin()
	err := svc.Emit(context.Background(), tx, DomainEvent{
		Topic:         "vortex-purchase-events",
		EventType:     enums.EventPurchaseCompleted,
		AggregateType: enums.AggregatePurchase,
		AggregateID:   aggregateID,
		Data:          map[string]string{"order_id": "VORTEX-1-abc"},
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := tx.Commit().Error; err != nil {
		t.Fatalf("commit: %v", err)
	}

	var row models.OutboxEvent
	if err := conn.First(&row).Error; err != nil {
		t.Fatalf("load row: %v", err)
	}
	if row.Status != enums.OutboxStatusPending {
		t.Fatalf("expected pending status, got %s", row.Status)
	}
	if row.AggregateID != aggregateID {
		t.Fatalf("aggregate id mismatch")
	}

	var envelope PayloadEnvelope
	if err := json.Unmarshal(row.Payload, &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Version != 1 {
		t.Fatalf("expected default version 1, got %d", envelope.Version)
	}
	if envelope.EventID == "" || envelope.OccurredAt.IsZero() {
		t.Fatal("envelope missing event id or timestamp")
	}
}

func TestEmitRequiresTransaction(t *testing.T) {
	svc := NewService(NewRepository(newTestDB(t)), nil)
	if err := svc.Emit(context.Background(), nil, DomainEvent{}); err == nil {
		t.Fatal("expected error without transaction")
	}
}

func TestMarkFailedMovesToFailedAfterMaxAttempts(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)

	row := models.OutboxEvent{
		ID:            uuid.New(),
		Topic:         "vortex-purchase-events",
		EventType:     enums.EventPurchaseCompleted,
		AggregateType: enums.AggregatePurchase,
		AggregateID:   uuid.New(),
		Payload:       json.RawMessage(`{}`),
		Status:        enums.OutboxStatusPending,
	}
	if err := conn.Create(&row).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	cause := contextCause{}
	if err := repo.MarkFailed(row.ID, cause, 2); err != nil {
		t.Fatalf("first failure: %v", err)
	}

	var got models.OutboxEvent
	if err := conn.First(&got, "id = ?", row.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Status != enums.OutboxStatusPending || got.AttemptCount != 1 {
		t.Fatalf("expected pending after first failure, got %s attempts=%d", got.Status, got.AttemptCount)
	}

	if err := repo.MarkFailed(row.ID, cause, 2); err != nil {
		t.Fatalf("second failure: %v", err)
	}
	if err := conn.First(&got, "id = ?", row.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Status != enums.OutboxStatusFailed {
		t.Fatalf("expected failed after exhausting attempts, got %s", got.Status)
	}

	pending, err := repo.FetchPending(10)
	if err != nil {
		t.Fatalf("fetch pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("failed rows must not be fetched, got %d", len(pending))
	}
}

type contextCause struct{}

func (contextCause) Error() string { return "publish timeout" }
