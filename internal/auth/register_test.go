package auth

import (
	"context"
	"testing"

	"github.com/hyun090116/vortex-game-explorer/internal/users"
	"github.com/hyun090116/vortex-game-explorer/pkg/config"
	"github.com/hyun090116/vortex-game-explorer/pkg/db"
	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
	"github.com/hyun090116/vortex-game-explorer/pkg/enums"
	pkgerrors "github.com/hyun090116/vortex-game-explorer/pkg/errors"
	"github.com/hyun090116/vortex-game-explorer/pkg/security"
)

func newTestClient(t *testing.T) *db.Client {
	t.Helper()
	client, err := db.New(context.Background(), config.DBConfig{
		Driver:       "sqlite",
		DSN:          "file::memory:",
		MaxOpenConns: 1,
	}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := client.DB().AutoMigrate(&models.User{}, &models.Profile{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return client
}

func newRegisterTestService(t *testing.T, client *db.Client) RegisterService {
	t.Helper()
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             client,
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("new register service: %v", err)
	}
	return svc
}

func TestRegisterCreatesAccount(t *testing.T) {
	client := newTestClient(t)
	svc := newRegisterTestService(t, client)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     " Nova ",
		Email:    "Nova@Vortex.GG",
		Password: "orbital-strike-7",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.User.Email != "nova@vortex.gg" {
		t.Fatalf("expected lowercased email, got %q", resp.User.Email)
	}
	if resp.User.Name != "Nova" {
		t.Fatalf("expected trimmed name, got %q", resp.User.Name)
	}
	if resp.User.Role != enums.UserRoleMember {
		t.Fatalf("expected member role, got %q", resp.User.Role)
	}

	repo := users.NewRepository(client.DB())
	stored, err := repo.FindByEmail(context.Background(), "nova@vortex.gg")
	if err != nil {
		t.Fatalf("load stored user: %v", err)
	}
	ok, err := security.VerifyPassword("orbital-strike-7", stored.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("stored hash does not verify: ok=%v err=%v", ok, err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	client := newTestClient(t)
	svc := newRegisterTestService(t, client)

	req := RegisterRequest{Name: "Nova", Email: "nova@vortex.gg", Password: "orbital-strike-7"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	client := newTestClient(t)
	svc := newRegisterTestService(t, client)

	_, err := svc.Register(context.Background(), RegisterRequest{Name: "Nova", Password: "orbital-strike-7"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing email, got %v", err)
	}

	_, err = svc.Register(context.Background(), RegisterRequest{Email: "nova@vortex.gg", Password: "orbital-strike-7"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing name, got %v", err)
	}
}
