package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
	pkgerrors "github.com/hyun090116/vortex-game-explorer/pkg/errors"
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
	if err := conn.AutoMigrate(&models.User{}, &models.Profile{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepository(conn)
}

func seedUser(t *testing.T, repo *Repository, email, name string) *models.User {
	t.Helper()
	user, err := repo.Create(context.Background(), CreateUserDTO{
		Email:        email,
		PasswordHash: "hash",
		Name:         name,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestGetProfileCreatesLazily(t *testing.T) {
	repo := newTestRepo(t)
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	user := seedUser(t, repo, "mika@vortex.gg", "Mika")

	profile, err := svc.GetProfile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.Username != "mika" {
		t.Fatalf("expected username derived from email, got %q", profile.Username)
	}
	if profile.DisplayName == nil || *profile.DisplayName != "Mika" {
		t.Fatalf("expected display name seeded from account name")
	}

	// Second read must reuse the created row.
	again, err := svc.GetProfile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("second get profile: %v", err)
	}
	if again.ID != profile.ID {
		t.Fatalf("expected same profile row, got %s vs %s", again.ID, profile.ID)
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	repo := newTestRepo(t)
	svc, _ := NewService(repo)

	_, err := svc.GetProfile(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	repo := newTestRepo(t)
	svc, _ := NewService(repo)
	user := seedUser(t, repo, "rin@vortex.gg", "Rin")

	bio := "speedrunner"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileDTO{Bio: &bio})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Bio == nil || *updated.Bio != "speedrunner" {
		t.Fatalf("bio not updated: %+v", updated)
	}

	_, err = svc.UpdateProfile(context.Background(), user.ID, UpdateProfileDTO{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty update, got %v", err)
	}
}
